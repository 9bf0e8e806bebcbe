package report

import (
	"context"
	"fmt"
	"io"

	"github.com/staffhub/staffhub-backend-go/internal/domain/report"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	report.ReportRepository
	roles *user.RoleConfig
}

func NewReportService(reportRepo report.ReportRepository, roles *user.RoleConfig) report.ReportService {
	return &ReportServiceImpl{ReportRepository: reportRepo, roles: roles}
}

// AttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, actor user.Actor, filter *report.AttendanceReportFilter) (*report.AttendanceReportResponse, error) {
	if !s.roles.Has(actor.Role, user.PermissionReportsView) {
		return nil, user.ErrPermissionRequired
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, _ := validator.IsValidDate(filter.StartDate)
	end, _ := validator.IsValidDate(filter.EndDate)

	rows, err := s.ReportRepository.AttendanceSummary(ctx, actor.CompanyID, start, end, filter.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance summary: %w", err)
	}

	return &report.AttendanceReportResponse{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Rows:      rows,
	}, nil
}

// AttendanceReportCSV implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReportCSV(ctx context.Context, actor user.Actor, filter *report.AttendanceReportFilter, w io.Writer) error {
	resp, err := s.AttendanceReport(ctx, actor, filter)
	if err != nil {
		return err
	}
	return writeAttendanceCSV(w, resp.Rows)
}

// LeaveReport implements report.ReportService.
func (s *ReportServiceImpl) LeaveReport(ctx context.Context, actor user.Actor, year int) (*report.LeaveReportResponse, error) {
	if !s.roles.Has(actor.Role, user.PermissionReportsView) {
		return nil, user.ErrPermissionRequired
	}

	rows, err := s.ReportRepository.LeaveSummary(ctx, actor.CompanyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to build leave summary: %w", err)
	}

	return &report.LeaveReportResponse{Year: year, Rows: rows}, nil
}

// LeaveReportCSV implements report.ReportService.
func (s *ReportServiceImpl) LeaveReportCSV(ctx context.Context, actor user.Actor, year int, w io.Writer) error {
	resp, err := s.LeaveReport(ctx, actor, year)
	if err != nil {
		return err
	}
	return writeLeaveCSV(w, resp.Rows)
}
