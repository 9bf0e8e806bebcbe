package user

import "time"

type Role string

const (
	RoleDeveloper  Role = "developer"
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleSuperadmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// User is the credential record behind a login.
type User struct {
	ID           string
	EmployeeID   *string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identifies the authenticated caller. Handlers build it from JWT
// claims and pass it into every service operation explicitly.
type Actor struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}
