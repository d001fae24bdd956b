package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

// RateRepository owns the append-only rate history. Rows are never mutated
// in place except to stamp end_date when a new current rate supersedes them;
// a partial unique index on (branch_id) WHERE end_date IS NULL enforces one
// current rate per scope.
type RateRepository struct {
	pool PgxPool
}

func NewRateRepository(pool PgxPool) *RateRepository {
	return &RateRepository{pool: pool}
}

// TxFunc runs inside the supersede transaction, typically to append the
// audit entry so the mutation and its trail commit together.
type TxFunc func(ctx context.Context, tx pgx.Tx, prev, next *domain.Rate) error

// ResolveAt returns the branch override active at `at` if one exists, else
// the base rate active at `at`. The caller passes the ticket's entry time,
// so later rate changes never retroactively alter a ticket.
func (r *RateRepository) ResolveAt(ctx context.Context, branchID uuid.UUID, at time.Time) (*domain.Rate, error) {
	override, err := r.activeAt(ctx, &branchID, at)
	if err == nil {
		return override, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("resolve branch rate: %w", err)
	}

	base, err := r.activeAt(ctx, nil, at)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoActiveRate
	}
	if err != nil {
		return nil, fmt.Errorf("resolve base rate: %w", err)
	}

	return base, nil
}

func (r *RateRepository) activeAt(ctx context.Context, branchID *uuid.UUID, at time.Time) (*domain.Rate, error) {
	query := `
		SELECT id, branch_id, amount_per_hour, start_date, end_date, created_at
		FROM rates
		WHERE branch_id IS NOT DISTINCT FROM $1
		  AND start_date <= $2
		  AND (end_date IS NULL OR end_date > $2)
		ORDER BY start_date DESC
		LIMIT 1
	`

	var rate domain.Rate
	err := r.pool.QueryRow(ctx, query, branchID, at).Scan(
		&rate.ID,
		&rate.BranchID,
		&rate.AmountPerHour,
		&rate.StartDate,
		&rate.EndDate,
		&rate.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rate, nil
}

// Supersede closes the current rate for the scope (nil branchID = base) and
// inserts a new current one, atomically. `record` runs in the same
// transaction; returning an error from it rolls everything back.
func (r *RateRepository) Supersede(ctx context.Context, branchID *uuid.UUID, amount decimal.Decimal, record TxFunc) (*domain.Rate, *domain.Rate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin supersede rate: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	prev, err := r.closeCurrent(ctx, tx, branchID, now)
	if err != nil {
		return nil, nil, err
	}

	next := &domain.Rate{
		ID:            uuid.New(),
		BranchID:      branchID,
		AmountPerHour: amount,
		StartDate:     now,
	}

	insert := `
		INSERT INTO rates (id, branch_id, amount_per_hour, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, NULL, NOW())
		RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insert, next.ID, next.BranchID, next.AmountPerHour, next.StartDate).Scan(&next.CreatedAt); err != nil {
		return nil, nil, fmt.Errorf("insert rate: %w", err)
	}

	if record != nil {
		if err := record(ctx, tx, prev, next); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit supersede rate: %w", err)
	}

	return prev, next, nil
}

// Clear closes the current branch override without creating a replacement,
// so resolution falls back to the base rate. Fails with NotFound when the
// branch has no current override.
func (r *RateRepository) Clear(ctx context.Context, branchID uuid.UUID, record TxFunc) (*domain.Rate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin clear rate: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	prev, err := r.closeCurrent(ctx, tx, &branchID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.ErrNotFound.WithError(errors.New("branch has no rate override"))
	}

	if record != nil {
		if err := record(ctx, tx, prev, nil); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit clear rate: %w", err)
	}

	return prev, nil
}

func (r *RateRepository) closeCurrent(ctx context.Context, tx pgx.Tx, branchID *uuid.UUID, at time.Time) (*domain.Rate, error) {
	query := `
		SELECT id, branch_id, amount_per_hour, start_date, end_date, created_at
		FROM rates
		WHERE branch_id IS NOT DISTINCT FROM $1 AND end_date IS NULL
		FOR UPDATE
	`

	var prev domain.Rate
	err := tx.QueryRow(ctx, query, branchID).Scan(
		&prev.ID,
		&prev.BranchID,
		&prev.AmountPerHour,
		&prev.StartDate,
		&prev.EndDate,
		&prev.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock current rate: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE rates SET end_date = $2 WHERE id = $1`, prev.ID, at); err != nil {
		return nil, fmt.Errorf("close current rate: %w", err)
	}
	prev.EndDate = &at

	return &prev, nil
}
