package postgresql

import (
	"context"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/report"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

func (r *reportRepositoryImpl) AttendanceSummary(ctx context.Context, companyID string, start, end time.Time, employeeID *string) ([]report.AttendanceSummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.first_name || ' ' || e.last_name,
			e.department,
			COUNT(*) FILTER (WHERE a.status = 'present'),
			COUNT(*) FILTER (WHERE a.status = 'late'),
			COUNT(*) FILTER (WHERE a.status = 'absent'),
			COALESCE(SUM(a.work_minutes), 0),
			COALESCE(SUM(a.total_break_minutes), 0)
		FROM employees e
		LEFT JOIN attendances a
			ON a.employee_id = e.id AND a.date BETWEEN $2 AND $3
		WHERE e.company_id = $1
		  AND ($4::uuid IS NULL OR e.id = $4)
		GROUP BY e.id, e.first_name, e.last_name, e.department
		ORDER BY e.first_name, e.last_name
	`

	rows, err := q.Query(ctx, query, companyID, start, end, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []report.AttendanceSummaryRow
	for rows.Next() {
		var row report.AttendanceSummaryRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.Department,
			&row.DaysPresent, &row.DaysLate, &row.DaysAbsent,
			&row.TotalWorkMinutes, &row.TotalBreakMinutes,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepositoryImpl) LeaveSummary(ctx context.Context, companyID string, year int) ([]report.LeaveSummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.first_name || ' ' || e.last_name,
			e.department,
			lr.type,
			COALESCE(SUM(lr.number_of_days), 0)
		FROM employees e
		JOIN leave_requests lr ON lr.employee_id = e.id
		WHERE e.company_id = $1
		  AND lr.status = 'approved'
		  AND EXTRACT(YEAR FROM lr.start_date) = $2
		GROUP BY e.id, e.first_name, e.last_name, e.department, lr.type
		ORDER BY e.first_name, e.last_name
	`

	rows, err := q.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byEmployee := make(map[string]*report.LeaveSummaryRow)
	var order []string
	for rows.Next() {
		var id, name, department, leaveType string
		var days int
		if err := rows.Scan(&id, &name, &department, &leaveType, &days); err != nil {
			return nil, err
		}

		row, ok := byEmployee[id]
		if !ok {
			row = &report.LeaveSummaryRow{
				EmployeeID:   id,
				EmployeeName: name,
				Department:   department,
				DaysByType:   make(map[string]int),
			}
			byEmployee[id] = row
			order = append(order, id)
		}
		row.DaysByType[leaveType] = days
		row.TotalDays += days
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]report.LeaveSummaryRow, 0, len(order))
	for _, id := range order {
		result = append(result, *byEmployee[id])
	}
	return result, nil
}
