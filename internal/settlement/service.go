package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

const (
	// openWindowTTL bounds staleness while charges are still accruing
	openWindowTTL = 5 * time.Minute
	// closedWindowTTL is long: a finished window can never change
	closedWindowTTL = 24 * time.Hour
)

type Aggregator interface {
	AggregateBenefit(ctx context.Context, benefitID uuid.UUID, start, end time.Time) (*ChargeTotals, error)
	AggregateFleet(ctx context.Context, fleetID uuid.UUID, start, end time.Time) (*ChargeTotals, error)
	ListActiveBenefits(ctx context.Context) ([]domain.CommerceBenefit, error)
	ListActiveFleets(ctx context.Context) ([]domain.Fleet, error)
}

type BenefitLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CommerceBenefit, error)
}

type FleetLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Fleet, error)
}

type BranchLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
}

type Cache interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service computes settlement summaries on demand, with a cache in front of
// the aggregation queries. Benefit windows are anchored to the branch's
// timezone; fleet windows use the operator's default timezone since a fleet
// spans branches.
type Service struct {
	repo       Aggregator
	benefits   BenefitLookup
	fleets     FleetLookup
	branches   BranchLookup
	cache      Cache
	defaultLoc *time.Location
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(
	repo Aggregator,
	benefits BenefitLookup,
	fleets FleetLookup,
	branches BranchLookup,
	cache Cache,
	defaultLoc *time.Location,
	logger *slog.Logger,
) *Service {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &Service{
		repo:       repo,
		benefits:   benefits,
		fleets:     fleets,
		branches:   branches,
		cache:      cache,
		defaultLoc: defaultLoc,
		logger:     logger,
		now:        time.Now,
	}
}

// BenefitSummary returns the settlement for the window containing ref
func (s *Service) BenefitSummary(ctx context.Context, benefitID uuid.UUID, ref time.Time) (*BenefitSettlement, error) {
	benefit, err := s.benefits.GetByID(ctx, benefitID)
	if err != nil {
		return nil, err
	}

	branch, err := s.branches.GetByID(ctx, benefit.BranchID)
	if err != nil {
		return nil, err
	}

	start, end := benefit.SettlementPeriod.Window(ref, branch.Location())

	key := fmt.Sprintf("settlement:benefit:%s:%d", benefitID, start.Unix())
	if s.cache != nil {
		var cached BenefitSettlement
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	totals, err := s.repo.AggregateBenefit(ctx, benefitID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	summary := &BenefitSettlement{
		BenefitID:       benefit.ID,
		CommerceID:      benefit.CommerceID,
		BranchID:        benefit.BranchID,
		BenefitType:     benefit.BenefitType,
		Period:          benefit.SettlementPeriod,
		WindowStart:     start,
		WindowEnd:       end,
		TicketCount:     totals.TicketCount,
		TotalHours:      totals.TotalHours,
		DiscountedHours: totals.DiscountedHours,
		SponsoredAmount: totals.DiscountAmount,
		BilledAmount:    totals.BilledAmount,
	}

	s.store(ctx, key, summary, end)
	return summary, nil
}

// FleetSummary returns the invoice summary for the window containing ref
func (s *Service) FleetSummary(ctx context.Context, fleetID uuid.UUID, ref time.Time) (*FleetSettlement, error) {
	fleet, err := s.fleets.GetByID(ctx, fleetID)
	if err != nil {
		return nil, err
	}

	period := fleet.BillingPeriod
	if !period.Valid() {
		period = domain.SettlementMonthly
	}
	start, end := period.Window(ref, s.defaultLoc)

	key := fmt.Sprintf("settlement:fleet:%s:%d", fleetID, start.Unix())
	if s.cache != nil {
		var cached FleetSettlement
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	totals, err := s.repo.AggregateFleet(ctx, fleetID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	summary := &FleetSettlement{
		FleetID:        fleet.ID,
		Name:           fleet.Name,
		TaxID:          fleet.TaxID,
		Period:         period,
		WindowStart:    start,
		WindowEnd:      end,
		TicketCount:    totals.TicketCount,
		TotalHours:     totals.TotalHours,
		DiscountAmount: totals.DiscountAmount,
		PayableAmount:  totals.BilledAmount,
	}

	s.store(ctx, key, summary, end)
	return summary, nil
}

func (s *Service) store(ctx context.Context, key string, summary interface{}, windowEnd time.Time) {
	if s.cache == nil {
		return
	}

	ttl := openWindowTTL
	if windowEnd.Before(s.now()) {
		ttl = closedWindowTTL
	}

	if err := s.cache.Set(ctx, key, summary, ttl); err != nil {
		s.logger.Warn("failed to cache settlement summary", "error", err, "key", key)
	}
}
