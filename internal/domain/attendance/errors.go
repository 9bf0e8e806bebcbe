package attendance

import "errors"

// Attendance domain errors
var (
	// Transition guards
	ErrAlreadySignedIn           = errors.New("you have already signed in today")
	ErrNotSignedInYet            = errors.New("you have not signed in yet")
	ErrAlreadySignedOut          = errors.New("you have already signed out")
	ErrAlreadyOnBreak            = errors.New("you are already on a break")
	ErrNoActiveBreak             = errors.New("no active break to end")
	ErrMustSignInFirst           = errors.New("you must sign in before signing out")
	ErrCannotSignOutWhileOnBreak = errors.New("end your break before signing out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
