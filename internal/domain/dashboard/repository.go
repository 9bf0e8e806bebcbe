package dashboard

import (
	"context"
	"time"
)

// DashboardRepository aggregates today's counters in the database.
type DashboardRepository interface {
	AttendanceCounters(ctx context.Context, companyID string, date time.Time) (present, late, onBreak, absent, signedOut int64, err error)
	OnApprovedLeaveCount(ctx context.Context, companyID string, date time.Time) (int64, error)
}
