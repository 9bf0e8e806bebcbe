package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
)

// AbsenceJobs closes out each working day by stamping an absent record for
// every employee who never signed in. Employees on approved leave are not
// marked absent.
type AbsenceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clk            clock.Clock
}

func NewAbsenceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) *AbsenceJobs {
	return &AbsenceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clk:            clk,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills yesterday's absences. It runs hourly but
// only acts during the first hour after midnight.
func (j *AbsenceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := j.clk.Now()
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	total := 0
	for _, companyID := range companyIDs {
		missing, err := j.attendanceRepo.ListEmployeesWithoutRecord(ctx, companyID, day)
		if err != nil {
			slog.Error("Cron: Failed to list unrecorded employees", "company_id", companyID, "error", err)
			continue
		}
		if len(missing) == 0 {
			continue
		}

		created, err := j.attendanceRepo.BulkCreateAbsences(ctx, companyID, missing, day)
		if err != nil {
			slog.Error("Cron: Failed to create absence records", "company_id", companyID, "error", err)
			continue
		}
		total += created
	}

	slog.Info("Cron: Marked absent employees", "date", day.Format("2006-01-02"), "count", total)
	return nil
}
