package employee

import "time"

// Employee is the HR profile behind a user account.
type Employee struct {
	ID         string
	CompanyID  string
	FirstName  string
	LastName   string
	Email      string
	Department string
	JobTitle   string
	Contact    string
	HireDate   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
