package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date,
	a.check_in, a.check_out,
	a.break_status, a.current_break_start, a.total_break_minutes,
	a.work_minutes, a.status,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row, a *attendance.Attendance) error {
	return row.Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date,
		&a.CheckIn, &a.CheckOut,
		&a.BreakStatus, &a.CurrentBreakStart, &a.TotalBreakMinutes,
		&a.WorkMinutes, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, company_id, date,
			check_in, check_out,
			break_status, current_break_start, total_break_minutes,
			work_minutes, status,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3,
			$4, $5,
			$6, $7, $8,
			$9, $10,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		a.EmployeeID, a.CompanyID, a.Date,
		a.CheckIn, a.CheckOut,
		a.BreakStatus, a.CurrentBreakStart, a.TotalBreakMinutes,
		a.WorkMinutes, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.first_name || ' ' || e.last_name AS employee_name
		FROM attendances a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.id = $1
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date,
		&a.CheckIn, &a.CheckOut,
		&a.BreakStatus, &a.CurrentBreakStart, &a.TotalBreakMinutes,
		&a.WorkMinutes, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	// FOR UPDATE serializes concurrent actions on the same day record.
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
		FOR UPDATE
	`

	var a attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			check_in = $2,
			check_out = $3,
			break_status = $4,
			current_break_start = $5,
			total_break_minutes = $6,
			work_minutes = $7,
			status = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		a.ID,
		a.CheckIn, a.CheckOut,
		a.BreakStatus, a.CurrentBreakStart, a.TotalBreakMinutes,
		a.WorkMinutes, a.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// sortColumns whitelists sortable fields against injection.
var attendanceSortColumns = map[string]string{
	"date":       "a.date",
	"check_in":   "a.check_in",
	"status":     "a.status",
	"created_at": "a.created_at",
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, companyID string, filter *attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.company_id = $1"}
	args := []interface{}{companyID}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		addCondition("a.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		addCondition("(e.first_name || ' ' || e.last_name) ILIKE $%d", "%"+*filter.EmployeeName+"%")
	}
	if filter.Date != nil && *filter.Date != "" {
		addCondition("a.date = $%d", *filter.Date)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("a.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil && *filter.Status != "" {
		addCondition("a.status = $%d", *filter.Status)
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON a.employee_id = e.id
		WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "a.date DESC"
	if col, ok := attendanceSortColumns[filter.SortBy]; ok {
		direction := "ASC"
		if filter.SortOrder == "desc" {
			direction = "DESC"
		}
		orderBy = col + " " + direction
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	args = append(args, limit, (page-1)*limit)

	query := `
		SELECT ` + attendanceColumns + `, e.first_name || ' ' || e.last_name AS employee_name
		FROM attendances a
		JOIN employees e ON a.employee_id = e.id
		WHERE ` + where + `
		ORDER BY ` + orderBy + fmt.Sprintf(`
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date,
			&a.CheckIn, &a.CheckOut,
			&a.BreakStatus, &a.CurrentBreakStart, &a.TotalBreakMinutes,
			&a.WorkMinutes, &a.Status,
			&a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter *attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	full := attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		Date:       filter.Date,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Status:     filter.Status,
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	q := GetQuerier(ctx, r.db)

	var companyID string
	err := q.QueryRow(ctx, `SELECT company_id FROM employees WHERE id = $1`, employeeID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, attendance.ErrAttendanceNotFound
		}
		return nil, 0, err
	}

	return r.List(ctx, companyID, &full)
}

func (r *attendanceRepositoryImpl) ListEmployeesWithoutRecord(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	// Employees on approved leave covering the date are excluded; they are
	// not absent.
	query := `
		SELECT e.id
		FROM employees e
		WHERE e.company_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $2
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM leave_requests lr
			WHERE lr.employee_id = e.id
			  AND lr.status = 'approved'
			  AND lr.start_date <= $2 AND lr.end_date >= $2
		  )
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *attendanceRepositoryImpl) BulkCreateAbsences(ctx context.Context, companyID string, employeeIDs []string, date time.Time) (int, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	// ON CONFLICT keeps the job idempotent across overlapping runs.
	query := `
		INSERT INTO attendances (
			id, employee_id, company_id, date,
			break_status, total_break_minutes, status,
			created_at, updated_at
		)
		SELECT gen_random_uuid(), unnest($1::uuid[]), $2, $3,
			'none', 0, 'absent',
			NOW(), NOW()
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, employeeIDs, companyID, date)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
