package report

import (
	"context"
	"time"
)

// ReportRepository aggregates attendance and leave data for exports.
type ReportRepository interface {
	AttendanceSummary(ctx context.Context, companyID string, start, end time.Time, employeeID *string) ([]AttendanceSummaryRow, error)
	LeaveSummary(ctx context.Context, companyID string, year int) ([]LeaveSummaryRow, error)
}
