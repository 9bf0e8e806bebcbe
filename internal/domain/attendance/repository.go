package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines attendance data access operations.
type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	GetByID(ctx context.Context, id string) (*Attendance, error)
	// GetByEmployeeAndDate returns ErrAttendanceNotFound when no record
	// exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	List(ctx context.Context, companyID string, filter *AttendanceFilter) ([]Attendance, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, filter *MyAttendanceFilter) ([]Attendance, int64, error)
	// ListEmployeesWithoutRecord returns employee IDs of a company that have
	// no attendance record for the given date.
	ListEmployeesWithoutRecord(ctx context.Context, companyID string, date time.Time) ([]string, error)
	BulkCreateAbsences(ctx context.Context, companyID string, employeeIDs []string, date time.Time) (int, error)
}
