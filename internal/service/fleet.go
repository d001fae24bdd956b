package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/domain"
	"github.com/parqueo-gt/parqueo/internal/repository"
)

type FleetAdminStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Fleet, error)
	UpdateDiscount(ctx context.Context, fleetID uuid.UUID, pct decimal.Decimal, record repository.FleetTxFunc) (*domain.Fleet, error)
	AddVehicle(ctx context.Context, v *domain.FleetVehicle) error
}

// FleetService manages corporate fleets: the negotiated discount band and the
// plates enrolled under the contracted limit.
type FleetService struct {
	fleets   FleetAdminStore
	recorder audit.Recorder
	logger   *slog.Logger
}

func NewFleetService(fleets FleetAdminStore, recorder audit.Recorder, logger *slog.Logger) *FleetService {
	return &FleetService{
		fleets:   fleets,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *FleetService) Get(ctx context.Context, id uuid.UUID) (*domain.Fleet, error) {
	return s.fleets.GetByID(ctx, id)
}

// SetDiscount sets the corporate percentage, capped at the contractual
// maximum of 10.
func (s *FleetService) SetDiscount(ctx context.Context, actor audit.Actor, fleetID uuid.UUID, pct decimal.Decimal) (*domain.Fleet, error) {
	if err := domain.ValidateCorporateDiscount(pct); err != nil {
		return nil, err
	}

	fleet, err := s.fleets.UpdateDiscount(ctx, fleetID, pct, func(ctx context.Context, tx pgx.Tx, prev, next *domain.Fleet) error {
		prevSnap, err := audit.Snapshot(prev)
		if err != nil {
			return err
		}
		nextSnap, err := audit.Snapshot(next)
		if err != nil {
			return err
		}

		entry := &audit.Entry{
			Module:         audit.ModuleFleets,
			Entity:         "fleet",
			Operation:      audit.OpUpdate,
			UserID:         actor.UserID,
			PreviousValues: prevSnap,
			NewValues:      nextSnap,
			ClientIP:       actor.ClientIP,
		}

		if err := s.recorder.RecordTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("audit fleet discount change: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fleet discount changed",
		slog.String("fleet_id", fleetID.String()),
		slog.String("corporate_discount_pct", pct.String()),
		slog.String("user_id", actor.UserID),
	)

	return fleet, nil
}

// AddVehicle enrolls a plate in a fleet; the plate limit is enforced in the
// same transaction as the insert.
func (s *FleetService) AddVehicle(ctx context.Context, actor audit.Actor, fleetID uuid.UUID, plate string, planCode domain.PlanCode) (*domain.FleetVehicle, error) {
	normalized, err := domain.NormalizePlate(plate)
	if err != nil {
		return nil, err
	}
	if !planCode.Valid() {
		return nil, domain.ErrPlanNotFound
	}

	vehicle := &domain.FleetVehicle{
		FleetID:      fleetID,
		LicensePlate: normalized,
		PlanCode:     planCode,
	}

	if err := s.fleets.AddVehicle(ctx, vehicle); err != nil {
		return nil, err
	}

	snap, err := audit.Snapshot(vehicle)
	if err != nil {
		return nil, err
	}
	entry := &audit.Entry{
		Module:    audit.ModuleFleets,
		Entity:    "fleet_vehicle",
		Operation: audit.OpInsert,
		UserID:    actor.UserID,
		NewValues: snap,
		ClientIP:  actor.ClientIP,
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("fleet vehicle added",
		slog.String("fleet_id", fleetID.String()),
		slog.String("license_plate", normalized),
		slog.String("plan_code", string(planCode)),
		slog.String("user_id", actor.UserID),
	)

	return vehicle, nil
}
