package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyProcessed     = errors.New("leave request has already been processed")
	ErrNotPending           = errors.New("only pending leave requests can be cancelled")
	ErrNotRequestOwner      = errors.New("leave request belongs to another employee")
	ErrCannotDecideOwn      = errors.New("you cannot decide your own leave request")
	ErrInsufficientRank     = errors.New("only a superadmin can decide this leave request")
	ErrOverlappingRequest   = errors.New("an active leave request already covers part of this range")
	ErrQuotaExceeded        = errors.New("insufficient leave balance for this request")
)
