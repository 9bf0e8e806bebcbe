package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.TxRunner
	attendance.AttendanceRepository
	clk    clock.Clock
	cutoff attendance.Cutoff
	roles  *user.RoleConfig
}

func NewAttendanceService(
	tx database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	cutoff attendance.Cutoff,
	roles *user.RoleConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		clk:                  clk,
		cutoff:               cutoff,
		roles:                roles,
	}
}

// resolveDay picks the working day: the request date when given, otherwise
// today in server-local time, truncated to midnight.
func (s *AttendanceServiceImpl) resolveDay(req *attendance.SignInRequest) (time.Time, error) {
	now := s.clk.Now()
	if req != nil && req.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", req.Date, now.Location())
		if err != nil {
			return time.Time{}, err
		}
		return day, nil
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
}

// SignIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SignIn(ctx context.Context, actor user.Actor, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	day, err := s.resolveDay(req)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()

	var record *attendance.Attendance
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, day)
		if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return fmt.Errorf("failed to load attendance: %w", err)
		}

		if existing == nil {
			existing = &attendance.Attendance{
				EmployeeID:  actor.EmployeeID,
				CompanyID:   actor.CompanyID,
				Date:        day,
				BreakStatus: attendance.BreakNone,
			}
			if err := existing.SignIn(now, s.cutoff); err != nil {
				return err
			}
			if err := s.AttendanceRepository.Create(ctx, existing); err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}
		} else {
			// An absent record stamped by the overnight job can still be
			// signed into; only a prior sign-in blocks.
			if err := existing.SignIn(now, s.cutoff); err != nil {
				return err
			}
			if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
		}

		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// mutate loads the day record under a transaction, applies fn and persists.
func (s *AttendanceServiceImpl) mutate(ctx context.Context, actor user.Actor, req *attendance.SignInRequest, missingErr error, fn func(a *attendance.Attendance) error) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	day, err := s.resolveDay(req)
	if err != nil {
		return nil, err
	}

	var record *attendance.Attendance
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, day)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return missingErr
			}
			return fmt.Errorf("failed to load attendance: %w", err)
		}

		if err := fn(existing); err != nil {
			return err
		}
		if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, actor user.Actor, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
	now := s.clk.Now()
	return s.mutate(ctx, actor, req, attendance.ErrNotSignedInYet, func(a *attendance.Attendance) error {
		return a.StartBreak(now)
	})
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, actor user.Actor, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
	now := s.clk.Now()
	return s.mutate(ctx, actor, req, attendance.ErrNoActiveBreak, func(a *attendance.Attendance) error {
		return a.EndBreak(now)
	})
}

// SignOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SignOut(ctx context.Context, actor user.Actor, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
	now := s.clk.Now()
	return s.mutate(ctx, actor, req, attendance.ErrMustSignInFirst, func(a *attendance.Attendance) error {
		return a.SignOut(now)
	})
}

// GetToday implements attendance.AttendanceService. A day with no record yet
// reads as an absent placeholder rather than an error.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, actor user.Actor) (*attendance.AttendanceResponse, error) {
	day, err := s.resolveDay(nil)
	if err != nil {
		return nil, err
	}

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			record = &attendance.Attendance{
				EmployeeID:  actor.EmployeeID,
				CompanyID:   actor.CompanyID,
				Date:        day,
				BreakStatus: attendance.BreakNone,
				Status:      attendance.StatusAbsent,
			}
		} else {
			return nil, fmt.Errorf("failed to load attendance: %w", err)
		}
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, actor user.Actor, filter *attendance.MyAttendanceFilter) (*attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, total, err := s.AttendanceRepository.ListByEmployee(ctx, actor.EmployeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildList(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, actor user.Actor, filter *attendance.AttendanceFilter) (*attendance.ListAttendanceResponse, error) {
	if !s.roles.Has(actor.Role, user.PermissionAttendanceViewAll) {
		return nil, user.ErrPermissionRequired
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildList(records, total, filter.Page, filter.Limit), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, actor user.Actor, id string) (*attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.EmployeeID != actor.EmployeeID && !s.roles.Has(actor.Role, user.PermissionAttendanceViewAll) {
		return nil, user.ErrPermissionRequired
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

func buildList(records []attendance.Attendance, total int64, page, limit int) *attendance.ListAttendanceResponse {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}

	from := (page-1)*limit + 1
	to := (page-1)*limit + len(records)
	showing := "0 of 0"
	if len(records) > 0 {
		showing = fmt.Sprintf("%d-%d of %d", from, to, total)
	}

	return &attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}
