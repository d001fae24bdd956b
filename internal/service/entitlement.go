package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

type SubscriptionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
}

type PlanStore interface {
	Get(ctx context.Context, code domain.PlanCode) (*domain.SubscriptionPlan, error)
}

type BenefitStore interface {
	GetActiveByBranch(ctx context.Context, branchID uuid.UUID) (*domain.CommerceBenefit, error)
}

type FleetStore interface {
	GetActiveByPlate(ctx context.Context, plate string) (*domain.Fleet, error)
}

// EntitlementResolver decides which reductions apply to a closing ticket and
// in what order. The order is load-bearing and fixed:
//
//  1. subscriber without a NO_CONSUME_HOURS branch benefit draws free hours
//     from the plan pool; the remainder is overage
//  2. subscriber with a NO_CONSUME_HOURS benefit bills normally and leaves
//     the pool untouched
//  3. non-subscriber with a DIRECT_DISCOUNT benefit gets the configured
//     reduction before any fleet discount
//  4. an active fleet discount applies to the post-benefit subtotal,
//     regardless of subscriber status
//
// Resolution never writes; cycle rollover is reported through CycleResetTo
// and persisted by the caller together with the draw.
type EntitlementResolver struct {
	subscriptions SubscriptionStore
	plans         PlanStore
	benefits      BenefitStore
	fleets        FleetStore
}

func NewEntitlementResolver(subscriptions SubscriptionStore, plans PlanStore, benefits BenefitStore, fleets FleetStore) *EntitlementResolver {
	return &EntitlementResolver{
		subscriptions: subscriptions,
		plans:         plans,
		benefits:      benefits,
		fleets:        fleets,
	}
}

func (r *EntitlementResolver) Resolve(ctx context.Context, ticket *domain.Ticket, totalHours decimal.Decimal, now time.Time) (*domain.Entitlements, error) {
	ent := &domain.Entitlements{}

	benefit, err := r.benefits.GetActiveByBranch(ctx, ticket.BranchID)
	if err != nil && !errors.Is(err, domain.ErrBenefitNotFound) {
		return nil, err
	}

	if ticket.IsSubscriber && ticket.SubscriptionID != nil {
		if benefit != nil && benefit.BenefitType == domain.BenefitNoConsumeHours {
			// hours billed normally, subscription pool protected
			ent.BenefitID = &benefit.ID
			return r.withFleet(ctx, ticket, ent)
		}

		if err := r.drawSubscription(ctx, ticket, totalHours, now, ent); err != nil {
			return nil, err
		}
		return r.withFleet(ctx, ticket, ent)
	}

	if benefit != nil && benefit.BenefitType == domain.BenefitDirectDiscount {
		ent.BenefitID = &benefit.ID
		switch benefit.DiscountMode {
		case domain.DiscountModeHours:
			ent.DirectDiscountHours = decimal.Min(totalHours, benefit.DiscountValue)
		case domain.DiscountModePercent:
			ent.DirectDiscountPct = benefit.DiscountValue
		}
	}

	return r.withFleet(ctx, ticket, ent)
}

func (r *EntitlementResolver) drawSubscription(ctx context.Context, ticket *domain.Ticket, totalHours decimal.Decimal, now time.Time, ent *domain.Entitlements) error {
	sub, err := r.subscriptions.GetByID(ctx, *ticket.SubscriptionID)
	if errors.Is(err, domain.ErrSubscriptionNotFound) {
		// subscription removed after entry: bill as a regular visitor
		return nil
	}
	if err != nil {
		return err
	}

	plan, err := r.plans.Get(ctx, sub.PlanCode)
	if err != nil {
		return err
	}

	if sub.NeedsReset(plan, now) {
		reset := sub.NextCycleStart(plan, now)
		ent.CycleResetTo = &reset
		sub.CycleStart = reset
		sub.HoursConsumed = decimal.Zero
	}

	free := decimal.Min(totalHours, sub.RemainingHours(plan))
	ent.SubscriptionID = &sub.ID
	ent.FreeHoursGranted = free
	ent.SubscriptionHoursConsumed = free
	ent.SubscriptionOverageHours = totalHours.Sub(free)
	return nil
}

func (r *EntitlementResolver) withFleet(ctx context.Context, ticket *domain.Ticket, ent *domain.Entitlements) (*domain.Entitlements, error) {
	fleet, err := r.fleets.GetActiveByPlate(ctx, ticket.LicensePlate)
	if errors.Is(err, domain.ErrFleetNotFound) {
		return ent, nil
	}
	if err != nil {
		return nil, err
	}

	if fleet.CorporateDiscountPct.IsPositive() {
		ent.FleetID = &fleet.ID
		ent.FleetDiscountPct = fleet.CorporateDiscountPct
	}

	return ent, nil
}
