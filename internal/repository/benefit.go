package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

const benefitColumns = `id, commerce_id, branch_id, benefit_type, discount_mode, discount_value, settlement_period, is_active, created_at, updated_at`

type BenefitRepository struct {
	pool PgxPool
}

func NewBenefitRepository(pool PgxPool) *BenefitRepository {
	return &BenefitRepository{pool: pool}
}

// BenefitTxFunc runs inside the mutation transaction for audit recording
type BenefitTxFunc func(ctx context.Context, tx pgx.Tx, prev, next *domain.CommerceBenefit) error

func (r *BenefitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommerceBenefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM commerce_benefits WHERE id = $1`

	b, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBenefitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get benefit by id: %w", err)
	}

	return b, nil
}

// GetActiveByBranch returns the single active benefit of a branch, if any
func (r *BenefitRepository) GetActiveByBranch(ctx context.Context, branchID uuid.UUID) (*domain.CommerceBenefit, error) {
	query := `
		SELECT ` + benefitColumns + `
		FROM commerce_benefits
		WHERE branch_id = $1 AND is_active = true
	`

	b, err := r.scanOne(r.pool.QueryRow(ctx, query, branchID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBenefitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active benefit: %w", err)
	}

	return b, nil
}

// Upsert edits the branch's active benefit in place when one exists, else
// inserts it. A branch is reconfigured, never duplicated; the partial unique
// index on (branch_id) WHERE is_active backs this invariant.
func (r *BenefitRepository) Upsert(ctx context.Context, b *domain.CommerceBenefit, record BenefitTxFunc) (*domain.CommerceBenefit, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin upsert benefit: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	prev, err := r.lockActiveByBranch(ctx, tx, b.BranchID)
	if err != nil {
		return nil, err
	}

	if prev != nil {
		b.ID = prev.ID
		b.CreatedAt = prev.CreatedAt
		err = tx.QueryRow(ctx, `
			UPDATE commerce_benefits
			SET commerce_id = $2, benefit_type = $3, discount_mode = $4, discount_value = $5, settlement_period = $6, is_active = true, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at
		`,
			b.ID,
			b.CommerceID,
			b.BenefitType,
			b.DiscountMode,
			b.DiscountValue,
			b.SettlementPeriod,
		).Scan(&b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("update benefit: %w", err)
		}
	} else {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO commerce_benefits (id, commerce_id, branch_id, benefit_type, discount_mode, discount_value, settlement_period, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true, NOW(), NOW())
			RETURNING created_at, updated_at
		`,
			b.ID,
			b.CommerceID,
			b.BranchID,
			b.BenefitType,
			b.DiscountMode,
			b.DiscountValue,
			b.SettlementPeriod,
		).Scan(&b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert benefit: %w", err)
		}
	}
	b.IsActive = true

	if record != nil {
		if err := record(ctx, tx, prev, b); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit upsert benefit: %w", err)
	}

	return prev, nil
}

// Deactivate turns off a branch's active benefit
func (r *BenefitRepository) Deactivate(ctx context.Context, branchID uuid.UUID, record BenefitTxFunc) (*domain.CommerceBenefit, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin deactivate benefit: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	prev, err := r.lockActiveByBranch(ctx, tx, branchID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.ErrBenefitNotFound
	}

	next := *prev
	next.IsActive = false

	if _, err := tx.Exec(ctx, `UPDATE commerce_benefits SET is_active = false, updated_at = NOW() WHERE id = $1`, prev.ID); err != nil {
		return nil, fmt.Errorf("deactivate benefit: %w", err)
	}

	if record != nil {
		if err := record(ctx, tx, prev, &next); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit deactivate benefit: %w", err)
	}

	return prev, nil
}

func (r *BenefitRepository) lockActiveByBranch(ctx context.Context, tx pgx.Tx, branchID uuid.UUID) (*domain.CommerceBenefit, error) {
	query := `
		SELECT ` + benefitColumns + `
		FROM commerce_benefits
		WHERE branch_id = $1 AND is_active = true
		FOR UPDATE
	`

	b, err := r.scanOne(tx.QueryRow(ctx, query, branchID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock active benefit: %w", err)
	}

	return b, nil
}

func (r *BenefitRepository) scanOne(row pgx.Row) (*domain.CommerceBenefit, error) {
	var b domain.CommerceBenefit
	err := row.Scan(
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
		return nil, err
	}
	return &b, nil
}
