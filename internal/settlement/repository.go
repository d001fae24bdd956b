package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parqueo-gt/parqueo/internal/domain"
	"github.com/parqueo-gt/parqueo/internal/repository"
)

// Repository runs the aggregation queries over the charges ledger. It only
// ever reads: settlement has no tables of its own, every number is a SUM
// over rows the ticket close wrote.
type Repository struct {
	pool repository.PgxPool
}

func NewRepository(pool repository.PgxPool) *Repository {
	return &Repository{pool: pool}
}

// AggregateBenefit sums the charges attributed to a benefit in [start, end)
func (r *Repository) AggregateBenefit(ctx context.Context, benefitID uuid.UUID, start, end time.Time) (*ChargeTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_hours), 0),
			COALESCE(SUM(direct_discount_hours), 0),
			COALESCE(SUM(benefit_discount_amount), 0),
			COALESCE(SUM(total_amount), 0)
		FROM charges
		WHERE benefit_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var t ChargeTotals
	err := r.pool.QueryRow(ctx, query, benefitID, start, end).Scan(
		&t.TicketCount,
		&t.TotalHours,
		&t.DiscountedHours,
		&t.DiscountAmount,
		&t.BilledAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate benefit charges: %w", err)
	}

	return &t, nil
}

// AggregateFleet sums the charges attributed to a fleet in [start, end)
func (r *Repository) AggregateFleet(ctx context.Context, fleetID uuid.UUID, start, end time.Time) (*ChargeTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_hours), 0),
			COALESCE(SUM(direct_discount_hours), 0),
			COALESCE(SUM(fleet_discount_amount), 0),
			COALESCE(SUM(total_amount), 0)
		FROM charges
		WHERE fleet_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var t ChargeTotals
	err := r.pool.QueryRow(ctx, query, fleetID, start, end).Scan(
		&t.TicketCount,
		&t.TotalHours,
		&t.DiscountedHours,
		&t.DiscountAmount,
		&t.BilledAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate fleet charges: %w", err)
	}

	return &t, nil
}

// ListActiveBenefits returns every active benefit for the precompute worker
func (r *Repository) ListActiveBenefits(ctx context.Context) ([]domain.CommerceBenefit, error) {
	query := `
		SELECT id, commerce_id, branch_id, benefit_type, discount_mode, discount_value, settlement_period, is_active, created_at, updated_at
		FROM commerce_benefits
		WHERE is_active = true
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active benefits: %w", err)
	}
	defer rows.Close()

	var benefits []domain.CommerceBenefit
	for rows.Next() {
		var b domain.CommerceBenefit
		err := rows.Scan(
			&b.ID,
			&b.CommerceID,
			&b.BranchID,
			&b.BenefitType,
			&b.DiscountMode,
			&b.DiscountValue,
			&b.SettlementPeriod,
			&b.IsActive,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan benefit: %w", err)
		}
		benefits = append(benefits, b)
	}

	return benefits, rows.Err()
}

// ListActiveFleets returns every active fleet for the precompute worker
func (r *Repository) ListActiveFleets(ctx context.Context) ([]domain.Fleet, error) {
	query := `
		SELECT id, tax_id, name, plate_limit, corporate_discount_pct, billing_period, is_active, created_at, updated_at
		FROM fleets
		WHERE is_active = true
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active fleets: %w", err)
	}
	defer rows.Close()

	var fleets []domain.Fleet
	for rows.Next() {
		var f domain.Fleet
		err := rows.Scan(
			&f.ID,
			&f.TaxID,
			&f.Name,
			&f.PlateLimit,
			&f.CorporateDiscountPct,
			&f.BillingPeriod,
			&f.IsActive,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan fleet: %w", err)
		}
		fleets = append(fleets, f)
	}

	return fleets, rows.Err()
}
