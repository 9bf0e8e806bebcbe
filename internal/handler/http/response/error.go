package response

import (
	"errors"
	"net/http"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/auth"
	"github.com/staffhub/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Transition guard
// violations read as conflicts: the request was well-formed but the record
// is in the wrong state.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrPermissionRequired):
		Forbidden(w, "You do not have permission to perform this action")

	// Attendance transition guards
	case errors.Is(err, attendance.ErrAlreadySignedIn),
		errors.Is(err, attendance.ErrNotSignedInYet),
		errors.Is(err, attendance.ErrAlreadySignedOut),
		errors.Is(err, attendance.ErrAlreadyOnBreak),
		errors.Is(err, attendance.ErrNoActiveBreak),
		errors.Is(err, attendance.ErrMustSignInFirst),
		errors.Is(err, attendance.ErrCannotSignOutWhileOnBreak):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors. A request owned by someone else reads as absent
	// so callers cannot probe for other employees' request IDs.
	case errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrNotRequestOwner):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed),
		errors.Is(err, leave.ErrNotPending),
		errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrQuotaExceeded):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrCannotDecideOwn),
		errors.Is(err, leave.ErrInsufficientRank):
		Forbidden(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
