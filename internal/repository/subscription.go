package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

const subscriptionColumns = `id, license_plate, plan_code, cycle_start, hours_consumed, is_active, created_at, updated_at`

type SubscriptionRepository struct {
	pool PgxPool
}

func NewSubscriptionRepository(pool PgxPool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) GetActiveByPlate(ctx context.Context, plate string) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE license_plate = $1 AND is_active = true
	`

	sub, err := r.scanOne(r.pool.QueryRow(ctx, query, plate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription by plate: %w", err)
	}

	return sub, nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	sub, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription by id: %w", err)
	}

	return sub, nil
}

// ResetCycle zeroes the consumed pool at a new cycle start. Called lazily
// when a read finds the cycle boundary has passed.
func (r *SubscriptionRepository) ResetCycle(ctx context.Context, id uuid.UUID, cycleStart time.Time) error {
	query := `
		UPDATE subscriptions
		SET cycle_start = $2, hours_consumed = 0, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, cycleStart)
	if err != nil {
		return fmt.Errorf("reset subscription cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepository) scanOne(row pgx.Row) (*domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(
		&s.ID,
		&s.LicensePlate,
		&s.PlanCode,
		&s.CycleStart,
		&s.HoursConsumed,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
