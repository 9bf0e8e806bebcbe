package employee

import "context"

// EmployeeRepository defines employee data access operations.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
