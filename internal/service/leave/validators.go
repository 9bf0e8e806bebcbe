package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
)

// OverlapValidator rejects submissions whose range intersects any of the
// employee's pending or approved requests.
type OverlapValidator struct {
	repo leave.LeaveRequestRepository
}

func NewOverlapValidator(repo leave.LeaveRequestRepository) *OverlapValidator {
	return &OverlapValidator{repo: repo}
}

func (v *OverlapValidator) Validate(ctx context.Context, employeeID string, start, end time.Time) error {
	active, err := v.repo.ListActiveInRange(ctx, employeeID, start, end)
	if err != nil {
		return fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	for _, existing := range active {
		if existing.Overlaps(start, end) {
			return leave.ErrOverlappingRequest
		}
	}
	return nil
}

// QuotaValidator rejects submissions that would push the employee past the
// calendar-year allowance for the leave type. Day arithmetic runs on
// decimals so half-day accrual extensions keep exact balances.
type QuotaValidator struct {
	repo   leave.LeaveRequestRepository
	quotas map[string]int
}

func NewQuotaValidator(repo leave.LeaveRequestRepository, quotas map[string]int) *QuotaValidator {
	return &QuotaValidator{repo: repo, quotas: quotas}
}

func (v *QuotaValidator) Validate(ctx context.Context, employeeID string, leaveType leave.Type, days int, year int) error {
	quota, ok := v.quotas[string(leaveType)]
	if !ok {
		// Unquoted types are unlimited.
		return nil
	}

	used, err := v.repo.SumApprovedDays(ctx, employeeID, leaveType, year)
	if err != nil {
		return fmt.Errorf("failed to sum approved days: %w", err)
	}

	total := decimal.NewFromInt(int64(used)).Add(decimal.NewFromInt(int64(days)))
	if total.GreaterThan(decimal.NewFromInt(int64(quota))) {
		return leave.ErrQuotaExceeded
	}
	return nil
}

// Remaining reports the unused balance for a leave type; the second return
// is false for unquoted types.
func (v *QuotaValidator) Remaining(ctx context.Context, employeeID string, leaveType leave.Type, year int) (used, remaining int, quoted bool, err error) {
	quota, ok := v.quotas[string(leaveType)]
	if !ok {
		return 0, 0, false, nil
	}

	used, err = v.repo.SumApprovedDays(ctx, employeeID, leaveType, year)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to sum approved days: %w", err)
	}

	left := decimal.NewFromInt(int64(quota)).Sub(decimal.NewFromInt(int64(used)))
	if left.IsNegative() {
		left = decimal.Zero
	}
	return used, int(left.IntPart()), true, nil
}
