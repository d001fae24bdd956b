package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxCorporateDiscount = decimal.NewFromInt(10)

// Fleet is a corporate account owning multiple vehicles under one discount
// and plate-limit policy.
type Fleet struct {
	ID                   uuid.UUID        `json:"id"`
	TaxID                string           `json:"tax_id"`
	Name                 string           `json:"name"`
	PlateLimit           int              `json:"plate_limit"`
	CorporateDiscountPct decimal.Decimal  `json:"corporate_discount_percentage"`
	BillingPeriod        SettlementPeriod `json:"billing_period"`
	IsActive             bool             `json:"is_active"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// FleetVehicle binds a license plate to a fleet and a subscription plan
type FleetVehicle struct {
	ID           uuid.UUID `json:"id"`
	FleetID      uuid.UUID `json:"fleet_id"`
	LicensePlate string    `json:"license_plate"`
	PlanCode     PlanCode  `json:"plan_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateCorporateDiscount enforces the 0-10% contractual band
func ValidateCorporateDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(maxCorporateDiscount) {
		return ErrInvalidDiscount
	}
	return nil
}
