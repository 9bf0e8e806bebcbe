package attendance

import (
	"fmt"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

// SignInRequest covers all four attendance actions; the date is optional
// and defaults to the current day.
type SignInRequest struct {
	Date string `json:"date,omitempty"`
}

func (r *SignInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must use the YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StatusBadge pairs the display label with its badge color.
type StatusBadge struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

type AttendanceResponse struct {
	ID                string      `json:"id"`
	EmployeeID        string      `json:"employee_id"`
	EmployeeName      string      `json:"employee_name,omitempty"`
	Date              string      `json:"date"`
	CheckInTime       *string     `json:"check_in_time"`
	CheckOutTime      *string     `json:"check_out_time"`
	BreakStatus       string      `json:"break_status"`
	TotalBreakMinutes int         `json:"total_break_minutes"`
	TotalBreakTime    string      `json:"total_break_time"`
	WorkMinutes       *int        `json:"work_minutes,omitempty"`
	WorkingTime       *string     `json:"working_time,omitempty"`
	Status            StatusBadge `json:"status"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type AttendanceFilter struct {
	EmployeeID   *string
	EmployeeName *string
	Date         *string
	StartDate    *string
	EndDate      *string
	Status       *string
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if v != nil && *v != "" {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must use the YYYY-MM-DD format",
				})
			}
		}
	}

	if f.SortOrder != "" && f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyAttendanceFilter struct {
	Date      *string
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (f *MyAttendanceFilter) Validate() error {
	full := AttendanceFilter{
		Date:      f.Date,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Status:    f.Status,
		SortOrder: f.SortOrder,
	}
	return full.Validate()
}

// FormatClock renders a timestamp as HH:MM (24-hour, no seconds), the wire
// convention for all time-of-day fields.
func FormatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

// FormatMinutes renders a minute count as "Xh Ym" for display.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// ToResponse maps a record to its API shape.
func ToResponse(a Attendance) AttendanceResponse {
	var name string
	if a.EmployeeName != nil {
		name = *a.EmployeeName
	}

	var workingTime *string
	if a.WorkMinutes != nil {
		s := FormatMinutes(*a.WorkMinutes)
		workingTime = &s
	}

	label := a.DisplayStatus()
	return AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      name,
		Date:              a.Date.Format("2006-01-02"),
		CheckInTime:       FormatClock(a.CheckIn),
		CheckOutTime:      FormatClock(a.CheckOut),
		BreakStatus:       string(a.BreakStatus),
		TotalBreakMinutes: a.TotalBreakMinutes,
		TotalBreakTime:    FormatMinutes(a.TotalBreakMinutes),
		WorkMinutes:       a.WorkMinutes,
		WorkingTime:       workingTime,
		Status:            StatusBadge{Status: label, Color: StatusColor(label)},
	}
}
