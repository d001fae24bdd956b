package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rate kinds
const (
	RateBase           = "BASE"
	RateBranchOverride = "BRANCH_OVERRIDE"
)

// Rate is one row of the append-only rate history. BranchID nil means the
// system-wide base rate. EndDate nil marks the current row for its scope;
// superseding a rate closes the old row and inserts a new one in the same
// transaction, so readers see either the old or the new rate, never both.
type Rate struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      *uuid.UUID      `json:"branch_id,omitempty"`
	AmountPerHour decimal.Decimal `json:"amount_per_hour"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (r *Rate) Kind() string {
	if r.BranchID == nil {
		return RateBase
	}
	return RateBranchOverride
}

func (r *Rate) IsCurrent() bool {
	return r.EndDate == nil
}

// ActiveAt reports whether this rate row covers the given instant
func (r *Rate) ActiveAt(at time.Time) bool {
	if at.Before(r.StartDate) {
		return false
	}
	return r.EndDate == nil || at.Before(*r.EndDate)
}

// ValidateRateAmount rejects non-positive hourly amounts
func ValidateRateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
