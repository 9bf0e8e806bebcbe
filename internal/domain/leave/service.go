package leave

import (
	"context"

	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
)

// LeaveService defines leave request business operations.
type LeaveService interface {
	Submit(ctx context.Context, actor user.Actor, req *CreateLeaveRequest) (*LeaveResponse, error)
	Decide(ctx context.Context, actor user.Actor, id string, req *DecideLeaveRequest) (*LeaveResponse, error)
	Cancel(ctx context.Context, actor user.Actor, id string) (*LeaveResponse, error)
	GetRequest(ctx context.Context, actor user.Actor, id string) (*LeaveResponse, error)
	GetMyRequests(ctx context.Context, actor user.Actor, filter *LeaveFilter) (*ListLeaveResponse, error)
	ListRequests(ctx context.Context, actor user.Actor, filter *LeaveFilter) (*ListLeaveResponse, error)
	GetMyQuota(ctx context.Context, actor user.Actor) (*QuotaResponse, error)
}
