package postgresql

import (
	"context"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/dashboard"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) AttendanceCounters(ctx context.Context, companyID string, date time.Time) (present, late, onBreak, absent, signedOut int64, err error) {
	q := GetQuerier(ctx, r.db)

	// Counters mirror the display priority: signed-out and on-break records
	// are pulled out of the present/late buckets.
	query := `
		SELECT
			COUNT(*) FILTER (WHERE check_in IS NOT NULL AND check_out IS NULL AND break_status <> 'on_break' AND status = 'present'),
			COUNT(*) FILTER (WHERE check_in IS NOT NULL AND check_out IS NULL AND break_status <> 'on_break' AND status = 'late'),
			COUNT(*) FILTER (WHERE check_out IS NULL AND break_status = 'on_break'),
			COUNT(*) FILTER (WHERE check_in IS NULL),
			COUNT(*) FILTER (WHERE check_out IS NOT NULL)
		FROM attendances
		WHERE company_id = $1 AND date = $2
	`

	err = q.QueryRow(ctx, query, companyID, date).Scan(&present, &late, &onBreak, &absent, &signedOut)
	return
}

func (r *dashboardRepositoryImpl) OnApprovedLeaveCount(ctx context.Context, companyID string, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT employee_id)
		FROM leave_requests
		WHERE company_id = $1
		  AND status = 'approved'
		  AND start_date <= $2 AND end_date >= $2
	`, companyID, date).Scan(&total)
	return total, err
}
