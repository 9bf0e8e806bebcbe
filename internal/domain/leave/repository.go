package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines leave request data access operations.
type LeaveRequestRepository interface {
	Create(ctx context.Context, r *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, r *LeaveRequest) error
	List(ctx context.Context, companyID string, filter *LeaveFilter) ([]LeaveRequest, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, filter *LeaveFilter) ([]LeaveRequest, int64, error)
	// ListActiveInRange returns the employee's pending and approved
	// requests whose inclusive range intersects [start, end].
	ListActiveInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)
	// SumApprovedDays totals the day counts of approved requests of the
	// given type starting within the calendar year.
	SumApprovedDays(ctx context.Context, employeeID string, leaveType Type, year int) (int, error)
	CountPendingByCompany(ctx context.Context, companyID string) (int64, error)
}
