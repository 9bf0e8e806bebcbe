package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/email"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/storage"
)

type LeaveServiceImpl struct {
	tx database.TxRunner
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	userRepo    user.UserRepository
	emailSvc    email.EmailService
	fileStorage storage.FileStorage
	clk         clock.Clock
	roles       *user.RoleConfig
	overlap     *OverlapValidator
	quota       *QuotaValidator
}

func NewLeaveService(
	tx database.TxRunner,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	emailSvc email.EmailService,
	fileStorage storage.FileStorage,
	clk clock.Clock,
	roles *user.RoleConfig,
	quotas map[string]int,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository:     employeeRepo,
		userRepo:               userRepo,
		emailSvc:               emailSvc,
		fileStorage:            fileStorage,
		clk:                    clk,
		roles:                  roles,
		overlap:                NewOverlapValidator(leaveRepo),
		quota:                  NewQuotaValidator(leaveRepo, quotas),
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, actor user.Actor, req *leave.CreateLeaveRequest) (*leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	days := leave.InclusiveDays(start, end)

	emp, err := s.EmployeeRepository.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}

	request := &leave.LeaveRequest{
		EmployeeID:    actor.EmployeeID,
		CompanyID:     actor.CompanyID,
		EmployeeName:  emp.FullName(),
		Department:    emp.Department,
		JobTitle:      emp.JobTitle,
		Contact:       emp.Contact,
		Type:          leave.Type(req.Type),
		StartDate:     start,
		EndDate:       end,
		NumberOfDays:  days,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        leave.StatusPending,
		RequesterRole: actor.Role,
	}
	// Admin-submitted requests carry a second gate that only a superadmin
	// can clear.
	if actor.Role == user.RoleAdmin {
		pending := leave.StatusPending
		request.SuperadminStatus = &pending
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.overlap.Validate(ctx, actor.EmployeeID, start, end); err != nil {
			return err
		}
		if err := s.quota.Validate(ctx, actor.EmployeeID, request.Type, days, start.Year()); err != nil {
			return err
		}
		return s.LeaveRequestRepository.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	s.notifyApprovers(ctx, request)

	resp := leave.ToResponse(*request)
	return &resp, nil
}

// notifyApprovers emails the users who can decide the request. Failures are
// logged, never surfaced; the submission already succeeded.
func (s *LeaveServiceImpl) notifyApprovers(ctx context.Context, request *leave.LeaveRequest) {
	approverRoles := []user.Role{user.RoleAdmin, user.RoleSuperadmin}
	if request.RequiresSuperadmin() {
		approverRoles = []user.Role{user.RoleSuperadmin}
	}

	emails, err := s.userRepo.ListApproverEmails(ctx, request.CompanyID, approverRoles)
	if err != nil {
		slog.Error("Failed to list approver emails", "leave_request_id", request.ID, "error", err)
		return
	}
	for _, to := range emails {
		if err := s.emailSvc.SendLeaveSubmitted(
			to, "there", request.EmployeeName, string(request.Type),
			request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"),
		); err != nil {
			slog.Error("Failed to send submission email", "to", to, "error", err)
		}
	}
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, actor user.Actor, id string, req *leave.DecideLeaveRequest) (*leave.LeaveResponse, error) {
	if !s.roles.Has(actor.Role, user.PermissionLeaveApprove) {
		return nil, user.ErrPermissionRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	decision := leave.Decision{
		Approve: req.Status == string(leave.StatusApproved),
		Comment: req.Comment,
	}
	now := s.clk.Now()

	var request *leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.LeaveRequestRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.CompanyID != actor.CompanyID {
			return leave.ErrLeaveRequestNotFound
		}

		if err := existing.ApplyDecision(actor.EmployeeID, actor.Role, decision, now); err != nil {
			return err
		}
		// Approval re-checks the quota: other requests may have been
		// approved since submission.
		if decision.Approve {
			if err := s.quota.Validate(ctx, existing.EmployeeID, existing.Type,
				existing.NumberOfDays, existing.StartDate.Year()); err != nil {
				return err
			}
		}
		if err := s.LeaveRequestRepository.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyRequester(ctx, request)

	resp := leave.ToResponse(*request)
	return &resp, nil
}

func (s *LeaveServiceImpl) notifyRequester(ctx context.Context, request *leave.LeaveRequest) {
	emp, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil {
		slog.Error("Failed to load requester for email", "leave_request_id", request.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendLeaveDecision(
		emp.Email, emp.FullName(), string(request.Type),
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"),
		string(request.Status), request.Comments,
	); err != nil {
		slog.Error("Failed to send decision email", "to", emp.Email, "error", err)
	}
}

// Cancel implements leave.LeaveService. The record stays, marked cancelled;
// the supporting attachment is removed once the cancellation is committed.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, actor user.Actor, id string) (*leave.LeaveResponse, error) {
	now := s.clk.Now()

	var request *leave.LeaveRequest
	var attachmentPath *string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.LeaveRequestRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := existing.CancelBy(actor.EmployeeID, now); err != nil {
			return err
		}
		attachmentPath = existing.AttachmentPath
		existing.AttachmentURL = nil
		existing.AttachmentPath = nil
		if err := s.LeaveRequestRepository.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if attachmentPath != nil {
		if err := s.fileStorage.Delete(ctx, *attachmentPath); err != nil {
			slog.Error("Failed to delete leave attachment", "leave_request_id", request.ID, "error", err)
		}
	}

	resp := leave.ToResponse(*request)
	return &resp, nil
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, actor user.Actor, id string) (*leave.LeaveResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.EmployeeID != actor.EmployeeID && !s.roles.Has(actor.Role, user.PermissionLeaveViewAll) {
		return nil, user.ErrPermissionRequired
	}

	resp := leave.ToResponse(*request)
	return &resp, nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, actor user.Actor, filter *leave.LeaveFilter) (*leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, total, err := s.LeaveRequestRepository.ListByEmployee(ctx, actor.EmployeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return buildList(requests, total, filter.Page, filter.Limit), nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, actor user.Actor, filter *leave.LeaveFilter) (*leave.ListLeaveResponse, error) {
	if !s.roles.Has(actor.Role, user.PermissionLeaveViewAll) {
		return nil, user.ErrPermissionRequired
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return buildList(requests, total, filter.Page, filter.Limit), nil
}

// GetMyQuota implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyQuota(ctx context.Context, actor user.Actor) (*leave.QuotaResponse, error) {
	year := s.clk.Now().Year()

	types := make([]string, 0, len(s.quota.quotas))
	for t := range s.quota.quotas {
		types = append(types, t)
	}
	sort.Strings(types)

	entries := make([]leave.QuotaEntry, 0, len(types))
	for _, t := range types {
		used, remaining, quoted, err := s.quota.Remaining(ctx, actor.EmployeeID, leave.Type(t), year)
		if err != nil {
			return nil, err
		}
		if !quoted {
			continue
		}
		entries = append(entries, leave.QuotaEntry{
			Type:      t,
			Total:     s.quota.quotas[t],
			Used:      used,
			Remaining: remaining,
		})
	}

	return &leave.QuotaResponse{Year: year, Entries: entries}, nil
}

func buildList(requests []leave.LeaveRequest, total int64, page, limit int) *leave.ListLeaveResponse {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}

	return &leave.ListLeaveResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Requests:   responses,
	}
}
