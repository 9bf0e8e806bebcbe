package attendance

import (
	"time"
)

// BreakStatus is the break sub-state of a day record.
type BreakStatus string

const (
	BreakNone    BreakStatus = "none"
	BreakOngoing BreakStatus = "on_break"
	BreakEnded   BreakStatus = "ended"
)

// DayStatus classifies the day as a whole.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusAbsent  DayStatus = "absent"
	StatusHalfDay DayStatus = "half_day"
)

// Attendance is one employee's record for one working day. At most one
// record exists per (employee, date); records are never deleted.
type Attendance struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	Date              time.Time // working day at local midnight
	CheckIn           *time.Time
	CheckOut          *time.Time
	BreakStatus       BreakStatus
	CurrentBreakStart *time.Time // set only while BreakStatus is on_break
	TotalBreakMinutes int        // accumulated across all breaks that day
	WorkMinutes       *int       // computed at sign-out
	Status            DayStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined for responses
	EmployeeName *string
}
