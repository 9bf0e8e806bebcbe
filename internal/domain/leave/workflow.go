package leave

import (
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
)

// InclusiveDays counts calendar days in [start, end], both ends included.
// Callers validate start <= end before reaching this point.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Decision is an approve or decline verdict on a pending request.
type Decision struct {
	Approve bool
	Comment *string
}

// ApplyDecision records a decision on a pending request. Admin-submitted
// requests carry the superadmin gate: only a superadmin (or developer) may
// decide them, and both status fields are written in the same step so the
// record never shows a half-applied verdict.
func (r *LeaveRequest) ApplyDecision(deciderID string, deciderRole user.Role, d Decision, now time.Time) error {
	if r.EmployeeID == deciderID {
		return ErrCannotDecideOwn
	}
	if r.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	if r.RequiresSuperadmin() && deciderRole != user.RoleSuperadmin && deciderRole != user.RoleDeveloper {
		return ErrInsufficientRank
	}

	verdict := StatusDeclined
	if d.Approve {
		verdict = StatusApproved
	}

	r.Status = verdict
	if r.SuperadminStatus != nil {
		s := verdict
		r.SuperadminStatus = &s
	}
	r.Comments = d.Comment
	r.DecidedBy = &deciderID
	t := now
	r.DecidedAt = &t
	return nil
}

// CancelBy withdraws the caller's own pending request.
func (r *LeaveRequest) CancelBy(employeeID string, now time.Time) error {
	if r.EmployeeID != employeeID {
		return ErrNotRequestOwner
	}
	if r.Status != StatusPending {
		return ErrNotPending
	}

	r.Status = StatusCancelled
	if r.SuperadminStatus != nil {
		s := StatusCancelled
		r.SuperadminStatus = &s
	}
	r.UpdatedAt = now
	return nil
}
