package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `
	lr.id, lr.employee_id, lr.company_id,
	lr.employee_name, lr.department, lr.job_title, lr.contact,
	lr.type, lr.start_date, lr.end_date, lr.number_of_days,
	lr.reason, lr.attachment_url, lr.attachment_path,
	lr.status, lr.requester_role, lr.superadmin_status,
	lr.comments, lr.decided_by, lr.decided_at,
	lr.created_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row, r *leave.LeaveRequest) error {
	return row.Scan(
		&r.ID, &r.EmployeeID, &r.CompanyID,
		&r.EmployeeName, &r.Department, &r.JobTitle, &r.Contact,
		&r.Type, &r.StartDate, &r.EndDate, &r.NumberOfDays,
		&r.Reason, &r.AttachmentURL, &r.AttachmentPath,
		&r.Status, &r.RequesterRole, &r.SuperadminStatus,
		&r.Comments, &r.DecidedBy, &r.DecidedAt,
		&r.CreatedAt, &r.UpdatedAt,
	)
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, company_id,
			employee_name, department, job_title, contact,
			type, start_date, end_date, number_of_days,
			reason, attachment_url, attachment_path,
			status, requester_role, superadmin_status,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2,
			$3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		req.EmployeeID, req.CompanyID,
		req.EmployeeName, req.Department, req.JobTitle, req.Contact,
		req.Type, req.StartDate, req.EndDate, req.NumberOfDays,
		req.Reason, req.AttachmentURL, req.AttachmentPath,
		req.Status, req.RequesterRole, req.SuperadminStatus,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1
		FOR UPDATE
	`

	var req leave.LeaveRequest
	if err := scanLeaveRequest(q.QueryRow(ctx, query, id), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	// Status and superadmin_status land in one statement so a decision is
	// never half-visible.
	query := `
		UPDATE leave_requests SET
			status = $2,
			superadmin_status = $3,
			comments = $4,
			decided_by = $5,
			decided_at = $6,
			attachment_url = $7,
			attachment_path = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID,
		req.Status, req.SuperadminStatus,
		req.Comments, req.DecidedBy, req.DecidedAt,
		req.AttachmentURL, req.AttachmentPath,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

var leaveSortColumns = map[string]string{
	"start_date": "lr.start_date",
	"end_date":   "lr.end_date",
	"status":     "lr.status",
	"type":       "lr.type",
	"created_at": "lr.created_at",
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, baseCondition string, baseArg interface{}, filter *leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{baseCondition}
	args := []interface{}{baseArg}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		addCondition("lr.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		addCondition("lr.employee_name ILIKE $%d", "%"+*filter.EmployeeName+"%")
	}
	if filter.Type != nil && *filter.Type != "" {
		addCondition("lr.type = $%d", *filter.Type)
	}
	if filter.Status != nil && *filter.Status != "" {
		addCondition("lr.status = $%d", *filter.Status)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("lr.end_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("lr.start_date <= $%d", *filter.EndDate)
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests lr WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "lr.created_at DESC"
	if col, ok := leaveSortColumns[filter.SortBy]; ok {
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
		SELECT ` + leaveColumns + `
		FROM leave_requests lr
		WHERE ` + where + `
		ORDER BY ` + orderBy + fmt.Sprintf(`
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		if err := scanLeaveRequest(rows, &req); err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, companyID string, filter *leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, "lr.company_id = $1", companyID, filter)
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter *leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, "lr.employee_id = $1", employeeID, filter)
}

func (r *leaveRequestRepositoryImpl) ListActiveInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
		  AND lr.status IN ('pending', 'approved')
		  AND lr.start_date <= $3 AND lr.end_date >= $2
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		if err := scanLeaveRequest(rows, &req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID string, leaveType leave.Type, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(number_of_days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND type = $2
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $3
	`

	var total int
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(&total)
	return total, err
}

func (r *leaveRequestRepositoryImpl) CountPendingByCompany(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE company_id = $1 AND status = 'pending'`,
		companyID,
	).Scan(&total)
	return total, err
}
