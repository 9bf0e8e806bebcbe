package leave

import (
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
)

// Status is the lifecycle state of a leave request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// Type is the leave category. Quotas are tracked per type per calendar year.
type Type string

const (
	TypeAnnual        Type = "Annual Leave"
	TypeSick          Type = "Sick Leave"
	TypeEmergency     Type = "Emergency Leave"
	TypeMaternity     Type = "Maternity Leave"
	TypePaternity     Type = "Paternity Leave"
	TypeStudy         Type = "Study Leave"
	TypeCompassionate Type = "Compassionate Leave"
	TypeMedical       Type = "Medical Leave"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeEmergency, TypeMaternity,
		TypePaternity, TypeStudy, TypeCompassionate, TypeMedical:
		return true
	}
	return false
}

// LeaveRequest is a request for a contiguous, inclusive date range.
// Employee details are snapshotted at submission so later profile edits do
// not rewrite history.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	CompanyID  string

	// Snapshot of the employee at submission time
	EmployeeName string
	Department   string
	JobTitle     string
	Contact      string

	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	NumberOfDays int
	Reason       string
	// AttachmentURL is the public link served to clients; AttachmentPath is
	// the storage key, kept so the blob can be removed on cancellation.
	AttachmentURL  *string
	AttachmentPath *string

	Status Status
	// RequesterRole is the role the requester held at submission.
	RequesterRole user.Role
	// SuperadminStatus is set (pending) at submission only for requests
	// made by admins; it records the second, superadmin-level decision.
	SuperadminStatus *Status

	Comments  *string
	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresSuperadmin reports whether this request is subject to the
// superadmin gate. The gate exists exactly when the dual-status field was
// stamped at submission.
func (r *LeaveRequest) RequiresSuperadmin() bool {
	return r.SuperadminStatus != nil
}

// Overlaps reports whether the request's inclusive range intersects
// [start, end].
func (r *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// Active reports whether the request still reserves its dates. Declined and
// cancelled requests free their range for new submissions.
func (r *LeaveRequest) Active() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}
