package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

// PlanRepository is deliberately edit-only: the five plan rows are seeded by
// migration and can be updated but never created or deleted through code.
type PlanRepository struct {
	pool PgxPool
}

func NewPlanRepository(pool PgxPool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

func (r *PlanRepository) Get(ctx context.Context, code domain.PlanCode) (*domain.SubscriptionPlan, error) {
	query := `
		SELECT code, name, monthly_hours, monthly_discount_pct, annual_extra_discount_pct, billing_frequency, updated_at
		FROM subscription_plans
		WHERE code = $1
	`

	var plan domain.SubscriptionPlan
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&plan.Code,
		&plan.Name,
		&plan.MonthlyHours,
		&plan.MonthlyDiscountPct,
		&plan.AnnualExtraDiscountPct,
		&plan.BillingFrequency,
		&plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	return &plan, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	query := `
		SELECT code, name, monthly_hours, monthly_discount_pct, annual_extra_discount_pct, billing_frequency, updated_at
		FROM subscription_plans
		ORDER BY code
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.SubscriptionPlan
	for rows.Next() {
		var plan domain.SubscriptionPlan
		err := rows.Scan(
			&plan.Code,
			&plan.Name,
			&plan.MonthlyHours,
			&plan.MonthlyDiscountPct,
			&plan.AnnualExtraDiscountPct,
			&plan.BillingFrequency,
			&plan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}

	return plans, nil
}

// Update edits the numeric fields of one of the five fixed plans
func (r *PlanRepository) Update(ctx context.Context, plan *domain.SubscriptionPlan, record func(ctx context.Context, tx pgx.Tx, prev *domain.SubscriptionPlan) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update plan: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	prev := &domain.SubscriptionPlan{}
	err = tx.QueryRow(ctx, `
		SELECT code, name, monthly_hours, monthly_discount_pct, annual_extra_discount_pct, billing_frequency, updated_at
		FROM subscription_plans
		WHERE code = $1
		FOR UPDATE
	`, plan.Code).Scan(
		&prev.Code,
		&prev.Name,
		&prev.MonthlyHours,
		&prev.MonthlyDiscountPct,
		&prev.AnnualExtraDiscountPct,
		&prev.BillingFrequency,
		&prev.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrPlanNotFound
	}
	if err != nil {
		return fmt.Errorf("lock plan: %w", err)
	}

	err = tx.QueryRow(ctx, `
		UPDATE subscription_plans
		SET monthly_hours = $2, monthly_discount_pct = $3, annual_extra_discount_pct = $4, billing_frequency = $5, updated_at = NOW()
		WHERE code = $1
		RETURNING name, updated_at
	`,
		plan.Code,
		plan.MonthlyHours,
		plan.MonthlyDiscountPct,
		plan.AnnualExtraDiscountPct,
		plan.BillingFrequency,
	).Scan(&plan.Name, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}

	if record != nil {
		if err := record(ctx, tx, prev); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update plan: %w", err)
	}

	return nil
}
