package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type mockAggregator struct{ mock.Mock }

func (m *mockAggregator) AggregateBenefit(ctx context.Context, benefitID uuid.UUID, start, end time.Time) (*ChargeTotals, error) {
	args := m.Called(ctx, benefitID, start, end)
	if t := args.Get(0); t != nil {
		return t.(*ChargeTotals), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAggregator) AggregateFleet(ctx context.Context, fleetID uuid.UUID, start, end time.Time) (*ChargeTotals, error) {
	args := m.Called(ctx, fleetID, start, end)
	if t := args.Get(0); t != nil {
		return t.(*ChargeTotals), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAggregator) ListActiveBenefits(ctx context.Context) ([]domain.CommerceBenefit, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]domain.CommerceBenefit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAggregator) ListActiveFleets(ctx context.Context) ([]domain.Fleet, error) {
	args := m.Called(ctx)
	if f := args.Get(0); f != nil {
		return f.([]domain.Fleet), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBenefitLookup struct{ mock.Mock }

func (m *mockBenefitLookup) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommerceBenefit, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.CommerceBenefit), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFleetLookup struct{ mock.Mock }

func (m *mockFleetLookup) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fleet, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*domain.Fleet), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBranchLookup struct{ mock.Mock }

func (m *mockBranchLookup) GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, value interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, value)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

func guatemala(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Guatemala")
	require.NoError(t, err)
	return loc
}

func newFixture(t *testing.T) (*mockAggregator, *mockBenefitLookup, *mockFleetLookup, *mockBranchLookup, *memoryCache, *Service) {
	agg := &mockAggregator{}
	benefits := &mockBenefitLookup{}
	fleets := &mockFleetLookup{}
	branches := &mockBranchLookup{}
	cache := newMemoryCache()
	svc := NewService(agg, benefits, fleets, branches, cache, guatemala(t), slog.New(slog.DiscardHandler))
	return agg, benefits, fleets, branches, cache, svc
}

func TestBenefitSummary_WeeklyWindowInBranchTimezone(t *testing.T) {
	agg, benefits, _, branches, _, svc := newFixture(t)
	loc := guatemala(t)

	benefit := &domain.CommerceBenefit{
		ID:               uuid.New(),
		CommerceID:       uuid.New(),
		BranchID:         uuid.New(),
		BenefitType:      domain.BenefitDirectDiscount,
		DiscountMode:     domain.DiscountModeHours,
		DiscountValue:    dec("2"),
		SettlementPeriod: domain.SettlementWeekly,
		IsActive:         true,
	}
	branch := &domain.Branch{ID: benefit.BranchID, Timezone: "America/Guatemala", IsActive: true}

	// Wednesday local time; the week runs Monday 16th through Sunday 22nd
	ref := time.Date(2025, 6, 18, 15, 0, 0, 0, loc)
	wantStart := time.Date(2025, 6, 16, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2025, 6, 23, 0, 0, 0, 0, loc)

	benefits.On("GetByID", mock.Anything, benefit.ID).Return(benefit, nil)
	branches.On("GetByID", mock.Anything, benefit.BranchID).Return(branch, nil)
	agg.On("AggregateBenefit", mock.Anything, benefit.ID, wantStart.UTC(), wantEnd.UTC()).Return(&ChargeTotals{
		TicketCount:     12,
		TotalHours:      dec("30"),
		DiscountedHours: dec("20"),
		DiscountAmount:  dec("100.00"),
		BilledAmount:    dec("50.00"),
	}, nil)

	summary, err := svc.BenefitSummary(context.Background(), benefit.ID, ref)
	require.NoError(t, err)

	assert.True(t, summary.WindowStart.Equal(wantStart))
	assert.True(t, summary.WindowEnd.Equal(wantEnd))
	assert.Equal(t, int64(12), summary.TicketCount)
	assert.True(t, summary.SponsoredAmount.Equal(dec("100.00")))
	assert.True(t, summary.BilledAmount.Equal(dec("50.00")))
	agg.AssertExpectations(t)
}

func TestBenefitSummary_SecondCallServedFromCache(t *testing.T) {
	agg, benefits, _, branches, cache, svc := newFixture(t)

	benefit := &domain.CommerceBenefit{
		ID:               uuid.New(),
		CommerceID:       uuid.New(),
		BranchID:         uuid.New(),
		BenefitType:      domain.BenefitNoConsumeHours,
		SettlementPeriod: domain.SettlementDaily,
		IsActive:         true,
	}
	branch := &domain.Branch{ID: benefit.BranchID, Timezone: "America/Guatemala", IsActive: true}
	ref := time.Now()

	benefits.On("GetByID", mock.Anything, benefit.ID).Return(benefit, nil)
	branches.On("GetByID", mock.Anything, benefit.BranchID).Return(branch, nil)
	agg.On("AggregateBenefit", mock.Anything, benefit.ID, mock.Anything, mock.Anything).Return(&ChargeTotals{
		TicketCount: 3,
		TotalHours:  dec("7"),
	}, nil).Once()

	first, err := svc.BenefitSummary(context.Background(), benefit.ID, ref)
	require.NoError(t, err)
	second, err := svc.BenefitSummary(context.Background(), benefit.ID, ref)
	require.NoError(t, err)

	assert.Equal(t, first.TicketCount, second.TicketCount)
	assert.Equal(t, 1, cache.sets)
	agg.AssertExpectations(t)
}

func TestFleetSummary_MonthlyInvoice(t *testing.T) {
	agg, _, fleets, _, _, svc := newFixture(t)
	loc := guatemala(t)

	fleet := &domain.Fleet{
		ID:                   uuid.New(),
		TaxID:                "12345678-9",
		Name:                 "Transportes Norte",
		CorporateDiscountPct: dec("10"),
		BillingPeriod:        domain.SettlementMonthly,
		IsActive:             true,
	}

	ref := time.Date(2025, 6, 18, 10, 0, 0, 0, loc)
	wantStart := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, loc)

	fleets.On("GetByID", mock.Anything, fleet.ID).Return(fleet, nil)
	agg.On("AggregateFleet", mock.Anything, fleet.ID, wantStart.UTC(), wantEnd.UTC()).Return(&ChargeTotals{
		TicketCount:    40,
		TotalHours:     dec("95"),
		DiscountAmount: dec("47.50"),
		BilledAmount:   dec("427.50"),
	}, nil)

	summary, err := svc.FleetSummary(context.Background(), fleet.ID, ref)
	require.NoError(t, err)

	assert.Equal(t, "Transportes Norte", summary.Name)
	assert.True(t, summary.PayableAmount.Equal(dec("427.50")))
	assert.True(t, summary.DiscountAmount.Equal(dec("47.50")))
	assert.True(t, summary.WindowStart.Equal(wantStart))
}

func TestFleetSummary_NotFound(t *testing.T) {
	_, _, fleets, _, _, svc := newFixture(t)

	id := uuid.New()
	fleets.On("GetByID", mock.Anything, id).Return(nil, domain.ErrFleetNotFound)

	_, err := svc.FleetSummary(context.Background(), id, time.Now())
	require.ErrorIs(t, err, domain.ErrFleetNotFound)
}

func TestWorker_RefreshesActiveBenefitsAndFleets(t *testing.T) {
	agg, benefits, fleets, branches, _, svc := newFixture(t)

	benefit := domain.CommerceBenefit{
		ID:               uuid.New(),
		BranchID:         uuid.New(),
		BenefitType:      domain.BenefitNoConsumeHours,
		SettlementPeriod: domain.SettlementDaily,
		IsActive:         true,
	}
	fleet := domain.Fleet{ID: uuid.New(), BillingPeriod: domain.SettlementMonthly, IsActive: true}
	branch := &domain.Branch{ID: benefit.BranchID, Timezone: "America/Guatemala", IsActive: true}

	agg.On("ListActiveBenefits", mock.Anything).Return([]domain.CommerceBenefit{benefit}, nil)
	agg.On("ListActiveFleets", mock.Anything).Return([]domain.Fleet{fleet}, nil)
	benefits.On("GetByID", mock.Anything, benefit.ID).Return(&benefit, nil)
	branches.On("GetByID", mock.Anything, benefit.BranchID).Return(branch, nil)
	fleets.On("GetByID", mock.Anything, fleet.ID).Return(&fleet, nil)
	agg.On("AggregateBenefit", mock.Anything, benefit.ID, mock.Anything, mock.Anything).Return(&ChargeTotals{}, nil)
	agg.On("AggregateFleet", mock.Anything, fleet.ID, mock.Anything, mock.Anything).Return(&ChargeTotals{}, nil)

	w := NewWorker(svc, agg, nil, slog.New(slog.DiscardHandler), time.Minute)
	w.refreshAll(context.Background())

	agg.AssertExpectations(t)
}
