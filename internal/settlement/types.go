// Package settlement aggregates the immutable charge ledger into periodic
// summaries: what each affiliated commerce owes for the hours it sponsored,
// and what each corporate fleet owes for its discounted tickets. Summaries
// are derived data; recomputing a window always yields the same result
// because closed charges never change.
package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

// BenefitSettlement is the reconciliation summary for one commerce benefit
// over one settlement window.
type BenefitSettlement struct {
	BenefitID       uuid.UUID               `json:"benefit_id"`
	CommerceID      uuid.UUID               `json:"commerce_id"`
	BranchID        uuid.UUID               `json:"branch_id"`
	BenefitType     string                  `json:"benefit_type"`
	Period          domain.SettlementPeriod `json:"period"`
	WindowStart     time.Time               `json:"window_start"`
	WindowEnd       time.Time               `json:"window_end"`
	TicketCount     int64                   `json:"ticket_count"`
	TotalHours      decimal.Decimal         `json:"total_hours"`
	DiscountedHours decimal.Decimal         `json:"discounted_hours"`
	SponsoredAmount decimal.Decimal         `json:"sponsored_amount"`
	BilledAmount    decimal.Decimal         `json:"billed_amount"`
}

// FleetSettlement is the invoice summary for one corporate fleet over one
// billing window: the amount payable and the discount it received.
type FleetSettlement struct {
	FleetID        uuid.UUID               `json:"fleet_id"`
	Name           string                  `json:"name"`
	TaxID          string                  `json:"tax_id"`
	Period         domain.SettlementPeriod `json:"period"`
	WindowStart    time.Time               `json:"window_start"`
	WindowEnd      time.Time               `json:"window_end"`
	TicketCount    int64                   `json:"ticket_count"`
	TotalHours     decimal.Decimal         `json:"total_hours"`
	DiscountAmount decimal.Decimal         `json:"discount_amount"`
	PayableAmount  decimal.Decimal         `json:"payable_amount"`
}

// ChargeTotals is the raw aggregate a window query returns
type ChargeTotals struct {
	TicketCount     int64
	TotalHours      decimal.Decimal
	DiscountedHours decimal.Decimal
	DiscountAmount  decimal.Decimal
	BilledAmount    decimal.Decimal
}
