package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Benefit types
const (
	BenefitNoConsumeHours = "NO_CONSUME_HOURS"
	BenefitDirectDiscount = "DIRECT_DISCOUNT"
)

// Direct-discount modes. The discount formula is explicit configuration:
// HOURS subtracts hour-equivalents from billable hours, PERCENT reduces the
// pre-fleet subtotal.
const (
	DiscountModeHours   = "HOURS"
	DiscountModePercent = "PERCENT"
)

// SettlementPeriod is the recurrence at which benefit or discount usage is
// aggregated for reconciliation with a commerce or fleet.
type SettlementPeriod string

const (
	SettlementDaily   SettlementPeriod = "DAILY"
	SettlementWeekly  SettlementPeriod = "WEEKLY"
	SettlementMonthly SettlementPeriod = "MONTHLY"
	SettlementAnnual  SettlementPeriod = "ANNUAL"
)

func (p SettlementPeriod) Valid() bool {
	switch p {
	case SettlementDaily, SettlementWeekly, SettlementMonthly, SettlementAnnual:
		return true
	}
	return false
}

// Window returns [start, end) of the settlement window containing ref,
// computed in the given location. Weeks run Monday through Sunday.
func (p SettlementPeriod) Window(ref time.Time, loc *time.Location) (time.Time, time.Time) {
	ref = ref.In(loc)
	switch p {
	case SettlementDaily:
		start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	case SettlementWeekly:
		offset := (int(ref.Weekday()) + 6) % 7 // Monday = 0
		start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case SettlementAnnual:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	default: // monthly
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}
}

// CommerceBenefit is the benefit a branch grants on behalf of an affiliated
// commerce. At most one active benefit exists per branch; branches are
// reconfigured by editing the row, never by duplicating it.
type CommerceBenefit struct {
	ID               uuid.UUID        `json:"id"`
	CommerceID       uuid.UUID        `json:"commerce_id"`
	BranchID         uuid.UUID        `json:"branch_id"`
	BenefitType      string           `json:"benefit_type"`
	DiscountMode     string           `json:"discount_mode,omitempty"`
	DiscountValue    decimal.Decimal  `json:"discount_value"`
	SettlementPeriod SettlementPeriod `json:"settlement_period"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (b *CommerceBenefit) Validate() error {
	switch b.BenefitType {
	case BenefitNoConsumeHours:
		// no discount configuration to check
	case BenefitDirectDiscount:
		if b.DiscountMode != DiscountModeHours && b.DiscountMode != DiscountModePercent {
			return ErrInvalidBenefit
		}
		if b.DiscountValue.IsNegative() {
			return ErrInvalidBenefit
		}
		if b.DiscountMode == DiscountModePercent && b.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return ErrInvalidBenefit
		}
	default:
		return ErrInvalidBenefit
	}
	if !b.SettlementPeriod.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}
