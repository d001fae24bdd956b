package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/domain"
	"github.com/parqueo-gt/parqueo/internal/platelock"
	"github.com/parqueo-gt/parqueo/internal/repository"
)

type TicketStore interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	GetByFolio(ctx context.Context, folio string) (*domain.Ticket, error)
	FindByPlate(ctx context.Context, plate string) ([]domain.Ticket, error)
	CountOpenByBranch(ctx context.Context, branchID uuid.UUID, vehicleType string) (int, error)
	CloseWithCharge(ctx context.Context, ticketID uuid.UUID, exitTime time.Time, charge *domain.Charge, draw *repository.SubscriptionDraw) error
}

type BranchStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
}

type SubscriptionDirectory interface {
	GetActiveByPlate(ctx context.Context, plate string) (*domain.Subscription, error)
}

type EntitlementSource interface {
	Resolve(ctx context.Context, ticket *domain.Ticket, totalHours decimal.Decimal, now time.Time) (*domain.Entitlements, error)
}

type RateResolver interface {
	ResolveAt(ctx context.Context, branchID uuid.UUID, at time.Time) (*domain.Rate, error)
}

// SessionService drives the ticket lifecycle: entry registration, exit with
// charge settlement, and lost-ticket lookups. Entry and exit for the same
// plate are serialized in-process on top of the database constraints, so a
// double scan at the gate cannot open two sessions or close one twice.
type SessionService struct {
	tickets       TicketStore
	branches      BranchStore
	subscriptions SubscriptionDirectory
	rates         RateResolver
	entitlements  EntitlementSource
	calculator    *ChargeCalculator
	plates        *platelock.Keyed
	logger        *slog.Logger
	now           func() time.Time
}

func NewSessionService(
	tickets TicketStore,
	branches BranchStore,
	subscriptions SubscriptionDirectory,
	rates RateResolver,
	entitlements EntitlementSource,
	calculator *ChargeCalculator,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		tickets:       tickets,
		branches:      branches,
		subscriptions: subscriptions,
		rates:         rates,
		entitlements:  entitlements,
		calculator:    calculator,
		plates:        platelock.New(),
		logger:        logger,
		now:           time.Now,
	}
}

// RegisterEntry opens a session for a plate at a branch. The plate is
// normalized before any check; subscriber status is stamped on the ticket at
// entry so later plan changes do not rewrite history.
func (s *SessionService) RegisterEntry(ctx context.Context, branchID uuid.UUID, plate, vehicleType string) (*domain.Ticket, error) {
	normalized, err := domain.NormalizePlate(plate)
	if err != nil {
		return nil, err
	}

	s.plates.Lock(normalized)
	defer s.plates.Unlock(normalized)

	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !branch.IsActive {
		return nil, domain.ErrBranchNotFound
	}

	capacity := branch.CapacityFor(vehicleType)
	if capacity <= 0 {
		return nil, domain.ErrValidationFailed.WithError(errors.New("vehicle type not accepted at this branch"))
	}

	open, err := s.tickets.CountOpenByBranch(ctx, branchID, vehicleType)
	if err != nil {
		return nil, err
	}
	if open >= capacity {
		return nil, domain.ErrBranchAtCapacity
	}

	ticket := &domain.Ticket{
		BranchID:     branchID,
		LicensePlate: normalized,
		VehicleType:  vehicleType,
		EntryTime:    s.now().UTC(),
		Status:       domain.TicketOpen,
	}

	sub, err := s.subscriptions.GetActiveByPlate(ctx, normalized)
	if err != nil && !errors.Is(err, domain.ErrSubscriptionNotFound) {
		return nil, err
	}
	if sub != nil {
		ticket.SubscriptionID = &sub.ID
		ticket.IsSubscriber = true
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket opened",
		slog.String("ticket_id", ticket.ID.String()),
		slog.String("folio", ticket.Folio),
		slog.String("branch_id", branchID.String()),
		slog.String("license_plate", normalized),
		slog.Bool("is_subscriber", ticket.IsSubscriber),
	)

	return ticket, nil
}

// RegisterExit closes the ticket and settles its charge atomically. The rate
// in force at entry time is the one applied, so a rate change mid-session
// never affects vehicles already inside.
func (s *SessionService) RegisterExit(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, *domain.Charge, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}

	s.plates.Lock(ticket.LicensePlate)
	defer s.plates.Unlock(ticket.LicensePlate)

	// re-read under the lock; a concurrent exit may have won
	ticket, err = s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if !ticket.IsOpen() {
		return nil, nil, domain.ErrTicketAlreadyClosed
	}

	exitTime := s.now().UTC()

	charge, ent, err := s.settle(ctx, ticket, exitTime)
	if err != nil {
		return nil, nil, err
	}

	var draw *repository.SubscriptionDraw
	if ent.SubscriptionID != nil {
		draw = &repository.SubscriptionDraw{
			SubscriptionID: *ent.SubscriptionID,
			Hours:          ent.SubscriptionHoursConsumed,
			CycleResetTo:   ent.CycleResetTo,
		}
	}

	if err := s.tickets.CloseWithCharge(ctx, ticket.ID, exitTime, charge, draw); err != nil {
		return nil, nil, err
	}

	ticket.ExitTime = &exitTime
	ticket.Status = domain.TicketClosed

	s.logger.Info("ticket closed",
		slog.String("ticket_id", ticket.ID.String()),
		slog.String("folio", ticket.Folio),
		slog.String("license_plate", ticket.LicensePlate),
		slog.String("total_hours", charge.TotalHours.String()),
		slog.String("total_amount", charge.TotalAmount.String()),
	)

	return ticket, charge, nil
}

// ChargePreview computes what the ticket would cost if it closed now. Strictly
// read-only: no draw, no cycle reset, no charge row.
func (s *SessionService) ChargePreview(ctx context.Context, ticketID uuid.UUID) (*domain.Charge, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.IsOpen() {
		return nil, domain.ErrTicketAlreadyClosed
	}

	charge, _, err := s.settle(ctx, ticket, s.now().UTC())
	return charge, err
}

func (s *SessionService) FindByFolio(ctx context.Context, folio string) (*domain.Ticket, error) {
	return s.tickets.GetByFolio(ctx, folio)
}

// FindByPlate is the lost-ticket path: the attendant looks the session up by
// the plate itself.
func (s *SessionService) FindByPlate(ctx context.Context, plate string) ([]domain.Ticket, error) {
	normalized, err := domain.NormalizePlate(plate)
	if err != nil {
		return nil, err
	}
	return s.tickets.FindByPlate(ctx, normalized)
}

func (s *SessionService) settle(ctx context.Context, ticket *domain.Ticket, at time.Time) (*domain.Charge, *domain.Entitlements, error) {
	rate, err := s.rates.ResolveAt(ctx, ticket.BranchID, ticket.EntryTime)
	if err != nil {
		return nil, nil, err
	}

	totalHours := s.calculator.TotalHours(ticket.ElapsedAt(at))

	ent, err := s.entitlements.Resolve(ctx, ticket, totalHours, at)
	if err != nil {
		return nil, nil, err
	}

	charge, err := s.calculator.Calculate(ticket, rate, ent, totalHours)
	if err != nil {
		return nil, nil, err
	}

	return charge, ent, nil
}
