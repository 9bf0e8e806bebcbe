package attendance

import (
	"time"
)

// Cutoff is the local wall-clock time separating a present sign-in from a
// late one, expressed as minutes after midnight. Sign-in at exactly the
// cutoff counts as present.
type Cutoff int

// ParseCutoff parses a "15:04" clock string.
func ParseCutoff(s string) (Cutoff, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return Cutoff(t.Hour()*60 + t.Minute()), nil
}

// on anchors the cutoff to a concrete working day.
func (c Cutoff) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), int(c)/60, int(c)%60, 0, 0, day.Location())
}

// SignIn records the first sign-in of the day and classifies the record as
// present or late against the cutoff.
func (a *Attendance) SignIn(now time.Time, cutoff Cutoff) error {
	if a.CheckIn != nil {
		return ErrAlreadySignedIn
	}

	t := now
	a.CheckIn = &t
	if now.After(cutoff.on(a.Date)) {
		a.Status = StatusLate
	} else {
		a.Status = StatusPresent
	}
	return nil
}

// StartBreak opens a break. Only one break may be open at a time.
func (a *Attendance) StartBreak(now time.Time) error {
	if a.CheckIn == nil {
		return ErrNotSignedInYet
	}
	if a.CheckOut != nil {
		return ErrAlreadySignedOut
	}
	if a.BreakStatus == BreakOngoing {
		return ErrAlreadyOnBreak
	}

	t := now
	a.BreakStatus = BreakOngoing
	a.CurrentBreakStart = &t
	return nil
}

// EndBreak closes the open break and adds its whole-minute duration to the
// day's accumulated break time. Break time never decreases.
func (a *Attendance) EndBreak(now time.Time) error {
	if a.BreakStatus != BreakOngoing || a.CurrentBreakStart == nil {
		return ErrNoActiveBreak
	}

	minutes := int(now.Sub(*a.CurrentBreakStart).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	a.TotalBreakMinutes += minutes
	a.CurrentBreakStart = nil
	a.BreakStatus = BreakEnded
	return nil
}

// SignOut finalizes the day: work minutes are the elapsed time since
// sign-in minus accumulated break time, floored at zero. SignOut is
// terminal for the day.
func (a *Attendance) SignOut(now time.Time) error {
	if a.CheckIn == nil {
		return ErrMustSignInFirst
	}
	if a.CheckOut != nil {
		return ErrAlreadySignedOut
	}
	if a.BreakStatus == BreakOngoing {
		return ErrCannotSignOutWhileOnBreak
	}

	worked := int(now.Sub(*a.CheckIn).Minutes()) - a.TotalBreakMinutes
	if worked < 0 {
		worked = 0
	}
	t := now
	a.CheckOut = &t
	a.WorkMinutes = &worked
	return nil
}

// DisplayStatus resolves the label shown for a record. The order is display
// priority, not logical exclusivity: a late employee who has signed out
// shows "Signed Out", not "Late".
func (a *Attendance) DisplayStatus() string {
	switch {
	case a.CheckIn == nil:
		return "Absent"
	case a.CheckOut != nil:
		return "Signed Out"
	case a.BreakStatus == BreakOngoing:
		return "On Break"
	case a.Status == StatusLate:
		return "Late"
	default:
		return "Present"
	}
}

// StatusColor maps a display label to its badge color.
func StatusColor(label string) string {
	switch label {
	case "Absent":
		return "red"
	case "Signed Out":
		return "gray"
	case "On Break":
		return "blue"
	case "Late":
		return "orange"
	default:
		return "green"
	}
}
