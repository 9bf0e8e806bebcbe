package report

import (
	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

// AttendanceReportFilter bounds the report period. Both dates are required
// so exports stay a deliberate, bounded operation.
type AttendanceReportFilter struct {
	StartDate  string
	EndDate    string
	EmployeeID *string
}

func (f *AttendanceReportFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must use the YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must use the YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceSummaryRow is one employee's aggregate over the report period.
type AttendanceSummaryRow struct {
	EmployeeID        string `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	Department        string `json:"department"`
	DaysPresent       int    `json:"days_present"`
	DaysLate          int    `json:"days_late"`
	DaysAbsent        int    `json:"days_absent"`
	TotalWorkMinutes  int    `json:"total_work_minutes"`
	TotalBreakMinutes int    `json:"total_break_minutes"`
}

type AttendanceReportResponse struct {
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Rows      []AttendanceSummaryRow `json:"rows"`
}

// LeaveSummaryRow is one employee's leave usage per type over a year.
type LeaveSummaryRow struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Department   string         `json:"department"`
	DaysByType   map[string]int `json:"days_by_type"`
	TotalDays    int            `json:"total_days"`
}

type LeaveReportResponse struct {
	Year int               `json:"year"`
	Rows []LeaveSummaryRow `json:"rows"`
}
