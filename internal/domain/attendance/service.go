package attendance

import (
	"context"

	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
)

// AttendanceService defines attendance business operations. All operations
// act on the calling employee's own record except the admin listing calls,
// which are permission gated.
type AttendanceService interface {
	SignIn(ctx context.Context, actor user.Actor, req *SignInRequest) (*AttendanceResponse, error)
	StartBreak(ctx context.Context, actor user.Actor, req *SignInRequest) (*AttendanceResponse, error)
	EndBreak(ctx context.Context, actor user.Actor, req *SignInRequest) (*AttendanceResponse, error)
	SignOut(ctx context.Context, actor user.Actor, req *SignInRequest) (*AttendanceResponse, error)
	GetToday(ctx context.Context, actor user.Actor) (*AttendanceResponse, error)
	GetMyAttendance(ctx context.Context, actor user.Actor, filter *MyAttendanceFilter) (*ListAttendanceResponse, error)
	ListAttendance(ctx context.Context, actor user.Actor, filter *AttendanceFilter) (*ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, actor user.Actor, id string) (*AttendanceResponse, error)
}
