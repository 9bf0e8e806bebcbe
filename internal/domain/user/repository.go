package user

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// ListApproverEmails returns the addresses of users holding any of the
	// given roles within a company.
	ListApproverEmails(ctx context.Context, companyID string, roles []Role) ([]string, error)
}
