package report

import (
	"context"
	"io"

	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
)

// ReportService defines reporting operations.
type ReportService interface {
	AttendanceReport(ctx context.Context, actor user.Actor, filter *AttendanceReportFilter) (*AttendanceReportResponse, error)
	AttendanceReportCSV(ctx context.Context, actor user.Actor, filter *AttendanceReportFilter, w io.Writer) error
	LeaveReport(ctx context.Context, actor user.Actor, year int) (*LeaveReportResponse, error)
	LeaveReportCSV(ctx context.Context, actor user.Actor, year int, w io.Writer) error
}
