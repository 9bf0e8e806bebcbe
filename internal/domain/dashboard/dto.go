package dashboard

// Summary is the admin dashboard snapshot for today.
type Summary struct {
	TotalEmployees  int64 `json:"total_employees"`
	PresentToday    int64 `json:"present_today"`
	LateToday       int64 `json:"late_today"`
	OnBreakNow      int64 `json:"on_break_now"`
	AbsentToday     int64 `json:"absent_today"`
	OnApprovedLeave int64 `json:"on_approved_leave"`
	PendingLeave    int64 `json:"pending_leave_requests"`
	SignedOutToday  int64 `json:"signed_out_today"`
}
