package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

const fleetColumns = `id, tax_id, name, plate_limit, corporate_discount_pct, billing_period, is_active, created_at, updated_at`

type FleetRepository struct {
	pool PgxPool
}

func NewFleetRepository(pool PgxPool) *FleetRepository {
	return &FleetRepository{pool: pool}
}

// FleetTxFunc runs inside the mutation transaction for audit recording
type FleetTxFunc func(ctx context.Context, tx pgx.Tx, prev, next *domain.Fleet) error

func (r *FleetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fleet, error) {
	query := `SELECT ` + fleetColumns + ` FROM fleets WHERE id = $1`

	f, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFleetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get fleet by id: %w", err)
	}

	return f, nil
}

// GetActiveByPlate returns the active fleet a plate belongs to, if any
func (r *FleetRepository) GetActiveByPlate(ctx context.Context, plate string) (*domain.Fleet, error) {
	query := `
		SELECT f.id, f.tax_id, f.name, f.plate_limit, f.corporate_discount_pct, f.billing_period, f.is_active, f.created_at, f.updated_at
		FROM fleets f
		INNER JOIN fleet_vehicles fv ON fv.fleet_id = f.id
		WHERE fv.license_plate = $1 AND fv.is_active = true AND f.is_active = true
	`

	f, err := r.scanOne(r.pool.QueryRow(ctx, query, plate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFleetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get fleet by plate: %w", err)
	}

	return f, nil
}

// UpdateDiscount sets the corporate discount percentage (validated by the
// service to the 0-10 band) atomically with its audit entry.
func (r *FleetRepository) UpdateDiscount(ctx context.Context, fleetID uuid.UUID, pct decimal.Decimal, record FleetTxFunc) (*domain.Fleet, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update fleet discount: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	prev, err := r.lockByID(ctx, tx, fleetID)
	if err != nil {
		return nil, err
	}

	next := *prev
	next.CorporateDiscountPct = pct

	err = tx.QueryRow(ctx, `
		UPDATE fleets
		SET corporate_discount_pct = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, fleetID, pct).Scan(&next.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update fleet discount: %w", err)
	}

	if record != nil {
		if err := record(ctx, tx, prev, &next); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update fleet discount: %w", err)
	}

	return &next, nil
}

// AddVehicle registers a plate under a fleet, enforcing the plate limit
// under the fleet row lock so concurrent additions cannot exceed it.
func (r *FleetRepository) AddVehicle(ctx context.Context, v *domain.FleetVehicle) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add fleet vehicle: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	fleet, err := r.lockByID(ctx, tx, v.FleetID)
	if err != nil {
		return err
	}

	var active int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM fleet_vehicles WHERE fleet_id = $1 AND is_active = true
	`, v.FleetID).Scan(&active)
	if err != nil {
		return fmt.Errorf("count fleet vehicles: %w", err)
	}
	if active >= fleet.PlateLimit {
		return domain.ErrFleetPlateLimit
	}

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO fleet_vehicles (id, fleet_id, license_plate, plan_code, is_active, created_at)
		VALUES ($1, $2, $3, $4, true, NOW())
		RETURNING created_at
	`, v.ID, v.FleetID, v.LicensePlate, v.PlanCode).Scan(&v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.AppError{
				Code:       "FLEET_VEHICLE_EXISTS",
				Message:    "This plate is already registered to a fleet",
				StatusCode: 409,
			}
		}
		return fmt.Errorf("insert fleet vehicle: %w", err)
	}
	v.IsActive = true

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit add fleet vehicle: %w", err)
	}

	return nil
}

func (r *FleetRepository) lockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Fleet, error) {
	query := `SELECT ` + fleetColumns + ` FROM fleets WHERE id = $1 FOR UPDATE`

	f, err := r.scanOne(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFleetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock fleet: %w", err)
	}

	return f, nil
}

func (r *FleetRepository) scanOne(row pgx.Row) (*domain.Fleet, error) {
	var f domain.Fleet
	err := row.Scan(
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
		return nil, err
	}
	return &f, nil
}
