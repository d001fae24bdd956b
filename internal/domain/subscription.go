package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription binds a plate to a plan for a billing cycle and tracks the
// hours drawn from the plan's monthly pool within the current cycle.
type Subscription struct {
	ID            uuid.UUID       `json:"id"`
	LicensePlate  string          `json:"license_plate"`
	PlanCode      PlanCode        `json:"plan_code"`
	CycleStart    time.Time       `json:"cycle_start"`
	HoursConsumed decimal.Decimal `json:"hours_consumed_this_cycle"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RemainingHours returns the free hours still available this cycle, floored
// at zero so a drained pool never goes negative.
func (s *Subscription) RemainingHours(plan *SubscriptionPlan) decimal.Decimal {
	remaining := plan.MonthlyHours.Sub(s.HoursConsumed)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// CycleEnd returns the exclusive end of the current billing cycle
func (s *Subscription) CycleEnd(plan *SubscriptionPlan) time.Time {
	if plan.BillingFrequency == BillingAnnual {
		return s.CycleStart.AddDate(1, 0, 0)
	}
	return s.CycleStart.AddDate(0, 1, 0)
}

// NeedsReset reports whether the cycle boundary has passed and the consumed
// pool should be reset before any further draw.
func (s *Subscription) NeedsReset(plan *SubscriptionPlan, now time.Time) bool {
	return !now.Before(s.CycleEnd(plan))
}

// NextCycleStart advances the cycle start past `now` in whole cycle steps
func (s *Subscription) NextCycleStart(plan *SubscriptionPlan, now time.Time) time.Time {
	start := s.CycleStart
	for !now.Before(s.cycleEndFrom(start, plan)) {
		start = s.cycleEndFrom(start, plan)
	}
	return start
}

func (s *Subscription) cycleEndFrom(start time.Time, plan *SubscriptionPlan) time.Time {
	if plan.BillingFrequency == BillingAnnual {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}
