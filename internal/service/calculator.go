package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

var (
	hundred        = decimal.NewFromInt(100)
	minutesPerHour = decimal.NewFromInt(60)
)

// ChargeCalculator turns elapsed time, a resolved rate and resolved
// entitlements into an itemized charge. It is a pure function of its inputs:
// no I/O, no clock reads, so recomputing a closed ticket always reproduces
// the same totals.
type ChargeCalculator struct {
	unit time.Duration
}

// NewChargeCalculator fixes the minimum billable unit. Partial units always
// consume a full unit; the engine never under-bills.
func NewChargeCalculator(unitMinutes int) *ChargeCalculator {
	if unitMinutes <= 0 {
		unitMinutes = 60
	}
	return &ChargeCalculator{unit: time.Duration(unitMinutes) * time.Minute}
}

// TotalHours rounds the elapsed duration up to whole billing units and
// returns it in decimal hours. Zero or negative elapsed time bills zero.
func (c *ChargeCalculator) TotalHours(elapsed time.Duration) decimal.Decimal {
	if elapsed <= 0 {
		return decimal.Zero
	}

	units := int64(elapsed / c.unit)
	if elapsed%c.unit != 0 {
		units++
	}

	unitMinutes := decimal.NewFromInt(int64(c.unit / time.Minute))
	return decimal.NewFromInt(units).Mul(unitMinutes).Div(minutesPerHour)
}

// Calculate produces the itemized charge for a ticket.
//
// Overage hours are excluded from billableHours and charged separately at
// the undiscounted rate; the commerce benefit reduces the subtotal first and
// the fleet discount applies to the post-benefit amount, never to the
// original in parallel.
func (c *ChargeCalculator) Calculate(ticket *domain.Ticket, rate *domain.Rate, ent *domain.Entitlements, totalHours decimal.Decimal) (*domain.Charge, error) {
	if rate.AmountPerHour.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInternal.WithError(errors.New("resolved rate is not positive"))
	}
	if totalHours.IsNegative() {
		return nil, domain.ErrInternal.WithError(errors.New("total hours is negative"))
	}

	billable := totalHours.
		Sub(ent.FreeHoursGranted).
		Sub(ent.SubscriptionOverageHours).
		Sub(ent.DirectDiscountHours)
	if billable.IsNegative() {
		billable = decimal.Zero
	}

	gross := billable.Mul(rate.AmountPerHour)
	afterBenefit := gross
	if ent.DirectDiscountPct.IsPositive() {
		afterBenefit = gross.Mul(hundred.Sub(ent.DirectDiscountPct)).Div(hundred)
	}
	afterFleet := afterBenefit
	if ent.FleetDiscountPct.IsPositive() {
		afterFleet = afterBenefit.Mul(hundred.Sub(ent.FleetDiscountPct)).Div(hundred)
	}
	subtotal := afterFleet.Round(2)

	// the sponsored amounts are itemized per charge so settlement can SUM
	// them straight off the ledger
	benefitDiscount := ent.DirectDiscountHours.Mul(rate.AmountPerHour).Add(gross.Sub(afterBenefit)).Round(2)
	fleetDiscount := afterBenefit.Sub(afterFleet).Round(2)

	// overage is billed at the standard rate and receives no discount
	overageCharge := ent.SubscriptionOverageHours.Mul(rate.AmountPerHour).Round(2)

	return &domain.Charge{
		TicketID:                  ticket.ID,
		BranchID:                  ticket.BranchID,
		TotalHours:                totalHours,
		FreeHoursGranted:          ent.FreeHoursGranted,
		SubscriptionHoursConsumed: ent.SubscriptionHoursConsumed,
		SubscriptionOverageHours:  ent.SubscriptionOverageHours,
		DirectDiscountHours:       ent.DirectDiscountHours,
		BillableHours:             billable,
		RateApplied:               rate.AmountPerHour,
		FleetDiscountPct:          ent.FleetDiscountPct,
		BenefitDiscountAmount:     benefitDiscount,
		FleetDiscountAmount:       fleetDiscount,
		Subtotal:                  subtotal,
		SubscriptionOverageCharge: overageCharge,
		TotalAmount:               subtotal.Add(overageCharge).Round(2),
		SubscriptionID:            ent.SubscriptionID,
		BenefitID:                 ent.BenefitID,
		FleetID:                   ent.FleetID,
	}, nil
}
