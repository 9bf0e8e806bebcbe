package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/dashboard"
	"github.com/staffhub/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employee.EmployeeRepository
	leaveRepo leave.LeaveRequestRepository
	clk       clock.Clock
	roles     *user.RoleConfig
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	clk clock.Clock,
	roles *user.RoleConfig,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepo,
		EmployeeRepository:  employeeRepo,
		leaveRepo:           leaveRepo,
		clk:                 clk,
		roles:               roles,
	}
}

// GetSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetSummary(ctx context.Context, actor user.Actor) (*dashboard.Summary, error) {
	if !s.roles.Has(actor.Role, user.PermissionDashboardView) {
		return nil, user.ErrPermissionRequired
	}

	now := s.clk.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totalEmployees, err := s.EmployeeRepository.CountByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	present, late, onBreak, absent, signedOut, err := s.DashboardRepository.AttendanceCounters(ctx, actor.CompanyID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance counters: %w", err)
	}

	onLeave, err := s.DashboardRepository.OnApprovedLeaveCount(ctx, actor.CompanyID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees on leave: %w", err)
	}

	pending, err := s.leaveRepo.CountPendingByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	return &dashboard.Summary{
		TotalEmployees:  totalEmployees,
		PresentToday:    present,
		LateToday:       late,
		OnBreakNow:      onBreak,
		AbsentToday:     absent,
		OnApprovedLeave: onLeave,
		PendingLeave:    pending,
		SignedOutToday:  signedOut,
	}, nil
}
