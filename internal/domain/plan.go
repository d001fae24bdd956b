package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanCode identifies one of the five fixed subscription plans. The catalog
// has exactly these identities: hours and discounts may be edited, plans are
// never created or deleted.
type PlanCode string

const (
	PlanA PlanCode = "A"
	PlanB PlanCode = "B"
	PlanC PlanCode = "C"
	PlanD PlanCode = "D"
	PlanE PlanCode = "E"
)

// Billing frequency
const (
	BillingMonthly = "MONTHLY"
	BillingAnnual  = "ANNUAL"
)

var validPlanCodes = map[PlanCode]bool{
	PlanA: true,
	PlanB: true,
	PlanC: true,
	PlanD: true,
	PlanE: true,
}

func (c PlanCode) Valid() bool {
	return validPlanCodes[c]
}

// PlanCodes returns the closed catalog in order
func PlanCodes() []PlanCode {
	return []PlanCode{PlanA, PlanB, PlanC, PlanD, PlanE}
}

type SubscriptionPlan struct {
	Code                   PlanCode        `json:"code"`
	Name                   string          `json:"name"`
	MonthlyHours           decimal.Decimal `json:"monthly_hours"`
	MonthlyDiscountPct     decimal.Decimal `json:"monthly_discount_percentage"`
	AnnualExtraDiscountPct decimal.Decimal `json:"annual_additional_discount_percentage"`
	BillingFrequency       string          `json:"billing_frequency"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func (p *SubscriptionPlan) Validate() error {
	if !p.Code.Valid() {
		return ErrPlanNotFound
	}
	if p.MonthlyHours.IsNegative() {
		return ErrValidationFailed
	}
	if p.MonthlyDiscountPct.IsNegative() || p.AnnualExtraDiscountPct.IsNegative() {
		return ErrValidationFailed
	}
	if p.BillingFrequency != BillingMonthly && p.BillingFrequency != BillingAnnual {
		return ErrValidationFailed
	}
	return nil
}
