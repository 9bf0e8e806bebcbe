package leave

import (
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	// AttachmentURL and AttachmentPath are set by the handler after a
	// successful upload, not by the client directly.
	AttachmentURL  *string `json:"-"`
	AttachmentPath *string `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "unknown leave type",
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must use the YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if end, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must use the YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideLeaveRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(StatusApproved) && r.Status != string(StatusDeclined) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or declined",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Department       string  `json:"department"`
	JobTitle         string  `json:"job_title"`
	Contact          string  `json:"contact"`
	Type             string  `json:"type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	NumberOfDays     int     `json:"number_of_days"`
	Reason           string  `json:"reason"`
	AttachmentURL    *string `json:"attachment_url,omitempty"`
	Status           string  `json:"status"`
	SuperadminStatus *string `json:"superadmin_status,omitempty"`
	Comments         *string `json:"comments,omitempty"`
	DecidedBy        *string `json:"decided_by,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Requests   []LeaveResponse `json:"leave_requests"`
}

// QuotaEntry is one leave type's allowance for the current calendar year.
type QuotaEntry struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

type QuotaResponse struct {
	Year    int          `json:"year"`
	Entries []QuotaEntry `json:"entries"`
}

type LeaveFilter struct {
	EmployeeID   *string
	EmployeeName *string
	Type         *string
	Status       *string
	StartDate    *string
	EndDate      *string
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
	}
	if f.Type != nil && *f.Type != "" && !Type(*f.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "unknown leave type"})
	}
	for field, v := range map[string]*string{"start_date": f.StartDate, "end_date": f.EndDate} {
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
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be asc or desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToResponse maps a request to its API shape.
func ToResponse(r LeaveRequest) LeaveResponse {
	var superStatus *string
	if r.SuperadminStatus != nil {
		s := string(*r.SuperadminStatus)
		superStatus = &s
	}
	var decidedAt *string
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		decidedAt = &s
	}

	return LeaveResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		Department:       r.Department,
		JobTitle:         r.JobTitle,
		Contact:          r.Contact,
		Type:             string(r.Type),
		StartDate:        r.StartDate.Format("2006-01-02"),
		EndDate:          r.EndDate.Format("2006-01-02"),
		NumberOfDays:     r.NumberOfDays,
		Reason:           r.Reason,
		AttachmentURL:    r.AttachmentURL,
		Status:           string(r.Status),
		SuperadminStatus: superStatus,
		Comments:         r.Comments,
		DecidedBy:        r.DecidedBy,
		DecidedAt:        decidedAt,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
}
