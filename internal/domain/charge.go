package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entitlements is the ordered outcome of benefit resolution for one closing
// ticket. Hour quantities are decimal hours in billing units.
type Entitlements struct {
	SubscriptionID            *uuid.UUID
	BenefitID                 *uuid.UUID
	FleetID                   *uuid.UUID
	FreeHoursGranted          decimal.Decimal
	SubscriptionHoursConsumed decimal.Decimal
	SubscriptionOverageHours  decimal.Decimal
	DirectDiscountHours       decimal.Decimal
	DirectDiscountPct         decimal.Decimal
	FleetDiscountPct          decimal.Decimal

	// CycleResetTo is set when the subscription's billing cycle rolled over
	// and the pool must be reset before the draw is applied. Resolution
	// itself never writes, so previews stay side-effect free.
	CycleResetTo *time.Time
}

// Charge is the immutable, itemized billing result persisted per closed
// ticket. It is the ledger settlement aggregation reads; rows are never
// updated after insert.
type Charge struct {
	ID                        uuid.UUID       `json:"id"`
	TicketID                  uuid.UUID       `json:"ticket_id"`
	BranchID                  uuid.UUID       `json:"branch_id"`
	TotalHours                decimal.Decimal `json:"total_hours"`
	FreeHoursGranted          decimal.Decimal `json:"free_hours_granted"`
	SubscriptionHoursConsumed decimal.Decimal `json:"subscription_hours_consumed"`
	SubscriptionOverageHours  decimal.Decimal `json:"subscription_overage_hours"`
	DirectDiscountHours       decimal.Decimal `json:"direct_discount_hours"`
	BillableHours             decimal.Decimal `json:"billable_hours"`
	RateApplied               decimal.Decimal `json:"rate_applied"`
	FleetDiscountPct          decimal.Decimal `json:"fleet_discount_percentage"`
	BenefitDiscountAmount     decimal.Decimal `json:"benefit_discount_amount"`
	FleetDiscountAmount       decimal.Decimal `json:"fleet_discount_amount"`
	Subtotal                  decimal.Decimal `json:"subtotal"`
	SubscriptionOverageCharge decimal.Decimal `json:"subscription_overage_charge"`
	TotalAmount               decimal.Decimal `json:"total_amount"`
	SubscriptionID            *uuid.UUID      `json:"subscription_id,omitempty"`
	BenefitID                 *uuid.UUID      `json:"benefit_id,omitempty"`
	FleetID                   *uuid.UUID      `json:"fleet_id,omitempty"`
	CreatedAt                 time.Time       `json:"created_at"`
}
