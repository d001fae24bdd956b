package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercase with dash", input: "p-123abc", want: "P123ABC"},
		{name: "spaces trimmed", input: " C 456 DEF ", want: "C456DEF"},
		{name: "already normalized", input: "M789GHI", want: "M789GHI"},
		{name: "too short", input: "AB", wantErr: true},
		{name: "invalid characters", input: "AB#123", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePlate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPlate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettlementPeriod_Window(t *testing.T) {
	loc, err := time.LoadLocation("America/Guatemala")
	require.NoError(t, err)

	// Wednesday 2025-06-18 15:30 local
	ref := time.Date(2025, 6, 18, 15, 30, 0, 0, loc)

	tests := []struct {
		name      string
		period    SettlementPeriod
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "daily is the calendar day",
			period:    SettlementDaily,
			wantStart: time.Date(2025, 6, 18, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 6, 19, 0, 0, 0, 0, loc),
		},
		{
			name:      "weekly runs monday to sunday",
			period:    SettlementWeekly,
			wantStart: time.Date(2025, 6, 16, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 6, 23, 0, 0, 0, 0, loc),
		},
		{
			name:      "monthly is the calendar month",
			period:    SettlementMonthly,
			wantStart: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 7, 1, 0, 0, 0, 0, loc),
		},
		{
			name:      "annual is the calendar year",
			period:    SettlementAnnual,
			wantStart: time.Date(2025, 1, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Window(ref, loc)
			assert.True(t, start.Equal(tt.wantStart), "start: got %v want %v", start, tt.wantStart)
			assert.True(t, end.Equal(tt.wantEnd), "end: got %v want %v", end, tt.wantEnd)
		})
	}
}

func TestSettlementPeriod_WindowSundayBelongsToPreviousWeek(t *testing.T) {
	// Sunday must fall in the week starting the previous Monday
	ref := time.Date(2025, 6, 22, 10, 0, 0, 0, time.UTC)
	start, end := SettlementWeekly.Window(ref, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), end)
}

func TestSubscription_RemainingHours(t *testing.T) {
	plan := &SubscriptionPlan{Code: PlanB, MonthlyHours: decimal.NewFromInt(10), BillingFrequency: BillingMonthly}

	sub := &Subscription{HoursConsumed: decimal.NewFromInt(4)}
	assert.True(t, sub.RemainingHours(plan).Equal(decimal.NewFromInt(6)))

	// overdrawn pool floors at zero, never negative
	sub.HoursConsumed = decimal.NewFromInt(12)
	assert.True(t, sub.RemainingHours(plan).Equal(decimal.Zero))
}

func TestSubscription_CycleReset(t *testing.T) {
	plan := &SubscriptionPlan{Code: PlanA, MonthlyHours: decimal.NewFromInt(20), BillingFrequency: BillingMonthly}
	sub := &Subscription{CycleStart: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)}

	assert.False(t, sub.NeedsReset(plan, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)))
	assert.True(t, sub.NeedsReset(plan, time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)))

	// skipped several cycles: next start lands in the current cycle
	next := sub.NextCycleStart(plan, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC), next)

	annual := &SubscriptionPlan{Code: PlanE, MonthlyHours: decimal.NewFromInt(50), BillingFrequency: BillingAnnual}
	assert.False(t, sub.NeedsReset(annual, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, sub.NeedsReset(annual, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
}

func TestPlanCode_ClosedCatalog(t *testing.T) {
	for _, code := range PlanCodes() {
		assert.True(t, code.Valid())
	}
	assert.False(t, PlanCode("F").Valid())
	assert.False(t, PlanCode("").Valid())
	assert.Len(t, PlanCodes(), 5)
}

func TestCommerceBenefit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		benefit CommerceBenefit
		wantErr error
	}{
		{
			name: "no consume hours needs no discount config",
			benefit: CommerceBenefit{
				BenefitType:      BenefitNoConsumeHours,
				SettlementPeriod: SettlementMonthly,
			},
		},
		{
			name: "direct discount in hours",
			benefit: CommerceBenefit{
				BenefitType:      BenefitDirectDiscount,
				DiscountMode:     DiscountModeHours,
				DiscountValue:    decimal.NewFromInt(2),
				SettlementPeriod: SettlementWeekly,
			},
		},
		{
			name: "direct discount missing mode",
			benefit: CommerceBenefit{
				BenefitType:      BenefitDirectDiscount,
				SettlementPeriod: SettlementDaily,
			},
			wantErr: ErrInvalidBenefit,
		},
		{
			name: "percent over 100",
			benefit: CommerceBenefit{
				BenefitType:      BenefitDirectDiscount,
				DiscountMode:     DiscountModePercent,
				DiscountValue:    decimal.NewFromInt(150),
				SettlementPeriod: SettlementDaily,
			},
			wantErr: ErrInvalidBenefit,
		},
		{
			name: "unknown benefit type",
			benefit: CommerceBenefit{
				BenefitType:      "FREE_COFFEE",
				SettlementPeriod: SettlementDaily,
			},
			wantErr: ErrInvalidBenefit,
		},
		{
			name: "bad settlement period",
			benefit: CommerceBenefit{
				BenefitType:      BenefitNoConsumeHours,
				SettlementPeriod: SettlementPeriod("QUARTERLY"),
			},
			wantErr: ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.benefit.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCorporateDiscount(t *testing.T) {
	assert.NoError(t, ValidateCorporateDiscount(decimal.Zero))
	assert.NoError(t, ValidateCorporateDiscount(decimal.NewFromInt(10)))
	assert.ErrorIs(t, ValidateCorporateDiscount(decimal.NewFromInt(11)), ErrInvalidDiscount)
	assert.ErrorIs(t, ValidateCorporateDiscount(decimal.NewFromInt(-1)), ErrInvalidDiscount)
}

func TestTicket_ElapsedAt(t *testing.T) {
	entry := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	ticket := &Ticket{EntryTime: entry}

	assert.Equal(t, 150*time.Minute, ticket.ElapsedAt(entry.Add(150*time.Minute)))
	// clock skew yields zero, not an error
	assert.Equal(t, time.Duration(0), ticket.ElapsedAt(entry.Add(-time.Minute)))
	assert.Equal(t, time.Duration(0), ticket.ElapsedAt(entry))
}

func TestRate_ActiveAt(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	closed := &Rate{StartDate: start, EndDate: &end}
	assert.True(t, closed.ActiveAt(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, closed.ActiveAt(end))
	assert.False(t, closed.ActiveAt(start.Add(-time.Hour)))

	current := &Rate{StartDate: end}
	assert.True(t, current.ActiveAt(end))
	assert.True(t, current.IsCurrent())
	assert.Equal(t, RateBase, current.Kind())
}
