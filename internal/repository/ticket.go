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

const ticketColumns = `id, folio, branch_id, license_plate, vehicle_type, entry_time, exit_time, status, subscription_id, is_subscriber, created_at, updated_at`

type TicketRepository struct {
	pool PgxPool
}

func NewTicketRepository(pool PgxPool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// SubscriptionDraw is the hour debit applied to a subscription pool when a
// ticket closes; persisted in the same transaction as the close. When the
// billing cycle rolled over since the last write, CycleResetTo carries the new
// cycle start and the pool restarts at exactly the drawn hours.
type SubscriptionDraw struct {
	SubscriptionID uuid.UUID
	Hours          decimal.Decimal
	CycleResetTo   *time.Time
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, folio, branch_id, license_plate, vehicle_type, entry_time, status, subscription_id, is_subscriber, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Folio == "" {
		t.Folio = domain.NewFolio(t.ID)
	}

	err := r.pool.QueryRow(ctx, query,
		t.ID,
		t.Folio,
		t.BranchID,
		t.LicensePlate,
		t.VehicleType,
		t.EntryTime,
		t.Status,
		t.SubscriptionID,
		t.IsSubscriber,
	).Scan(&t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		// partial unique index on (license_plate) WHERE status = 'OPEN'
		if isUniqueViolation(err) {
			return domain.ErrDuplicateActiveTicket
		}
		return fmt.Errorf("create ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket by id: %w", err)
	}

	return ticket, nil
}

func (r *TicketRepository) GetByFolio(ctx context.Context, folio string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE folio = $1`

	ticket, err := r.scanOne(r.pool.QueryRow(ctx, query, folio))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket by folio: %w", err)
	}

	return ticket, nil
}

// FindByPlate returns the plate's ticket history, newest first. Lost-ticket
// recovery path; read-only.
func (r *TicketRepository) FindByPlate(ctx context.Context, plate string) ([]domain.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE license_plate = $1
		ORDER BY entry_time DESC
		LIMIT 50
	`

	rows, err := r.pool.Query(ctx, query, plate)
	if err != nil {
		return nil, fmt.Errorf("find tickets by plate: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		ticket, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, *ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}

	return tickets, nil
}

// CountOpenByBranch returns current occupancy for a vehicle type at a branch
func (r *TicketRepository) CountOpenByBranch(ctx context.Context, branchID uuid.UUID, vehicleType string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE branch_id = $1 AND vehicle_type = $2 AND status = 'OPEN'
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, branchID, vehicleType).Scan(&count); err != nil {
		return 0, fmt.Errorf("count open tickets: %w", err)
	}

	return count, nil
}

// CloseWithCharge closes the ticket, inserts its charge row and applies the
// subscription draw in one transaction. All-or-nothing: the ticket is not
// considered closed if any part fails.
func (r *TicketRepository) CloseWithCharge(ctx context.Context, ticketID uuid.UUID, exitTime time.Time, charge *domain.Charge, draw *SubscriptionDraw) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin close ticket: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE tickets
		SET exit_time = $2, status = 'CLOSED', updated_at = NOW()
		WHERE id = $1 AND status = 'OPEN'
	`, ticketID, exitTime)
	if err != nil {
		return fmt.Errorf("close ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketAlreadyClosed
	}

	if charge.ID == uuid.Nil {
		charge.ID = uuid.New()
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO charges (
			id, ticket_id, branch_id, total_hours, free_hours_granted,
			subscription_hours_consumed, subscription_overage_hours, direct_discount_hours,
			billable_hours, rate_applied, fleet_discount_pct, benefit_discount_amount,
			fleet_discount_amount, subtotal, subscription_overage_charge, total_amount,
			subscription_id, benefit_id, fleet_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
	`,
		charge.ID,
		charge.TicketID,
		charge.BranchID,
		charge.TotalHours,
		charge.FreeHoursGranted,
		charge.SubscriptionHoursConsumed,
		charge.SubscriptionOverageHours,
		charge.DirectDiscountHours,
		charge.BillableHours,
		charge.RateApplied,
		charge.FleetDiscountPct,
		charge.BenefitDiscountAmount,
		charge.FleetDiscountAmount,
		charge.Subtotal,
		charge.SubscriptionOverageCharge,
		charge.TotalAmount,
		charge.SubscriptionID,
		charge.BenefitID,
		charge.FleetID,
	)
	if err != nil {
		return fmt.Errorf("insert charge: %w", err)
	}

	if draw != nil && (draw.Hours.IsPositive() || draw.CycleResetTo != nil) {
		if draw.CycleResetTo != nil {
			_, err = tx.Exec(ctx, `
				UPDATE subscriptions
				SET cycle_start = $2, hours_consumed = $3, updated_at = NOW()
				WHERE id = $1
			`, draw.SubscriptionID, *draw.CycleResetTo, draw.Hours)
		} else {
			_, err = tx.Exec(ctx, `
				UPDATE subscriptions
				SET hours_consumed = hours_consumed + $2, updated_at = NOW()
				WHERE id = $1
			`, draw.SubscriptionID, draw.Hours)
		}
		if err != nil {
			return fmt.Errorf("apply subscription draw: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit close ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) scanOne(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.Folio,
		&t.BranchID,
		&t.LicensePlate,
		&t.VehicleType,
		&t.EntryTime,
		&t.ExitTime,
		&t.Status,
		&t.SubscriptionID,
		&t.IsSubscriber,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
