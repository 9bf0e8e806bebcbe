package dashboard

import (
	"context"

	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
)

// DashboardService builds the admin dashboard snapshot.
type DashboardService interface {
	GetSummary(ctx context.Context, actor user.Actor) (*Summary, error)
}
