package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/domain"
	"github.com/parqueo-gt/parqueo/internal/repository"
)

type RateStore interface {
	ResolveAt(ctx context.Context, branchID uuid.UUID, at time.Time) (*domain.Rate, error)
	Supersede(ctx context.Context, branchID *uuid.UUID, amount decimal.Decimal, record repository.TxFunc) (*domain.Rate, *domain.Rate, error)
	Clear(ctx context.Context, branchID uuid.UUID, record repository.TxFunc) (*domain.Rate, error)
}

// RateCatalog owns the base hourly rate and its per-branch overrides. Every
// successful mutation commits atomically with one audit entry carrying the
// superseded and new rate snapshots.
type RateCatalog struct {
	rates    RateStore
	recorder audit.Recorder
	logger   *slog.Logger
}

func NewRateCatalog(rates RateStore, recorder audit.Recorder, logger *slog.Logger) *RateCatalog {
	return &RateCatalog{
		rates:    rates,
		recorder: recorder,
		logger:   logger,
	}
}

// ResolveRate returns the rate in force at `at` for the branch: the branch
// override when one exists, the base rate otherwise.
func (s *RateCatalog) ResolveRate(ctx context.Context, branchID uuid.UUID, at time.Time) (*domain.Rate, error) {
	return s.rates.ResolveAt(ctx, branchID, at)
}

func (s *RateCatalog) SetBaseRate(ctx context.Context, actor audit.Actor, amount decimal.Decimal) (*domain.Rate, error) {
	if err := domain.ValidateRateAmount(amount); err != nil {
		return nil, err
	}

	_, next, err := s.rates.Supersede(ctx, nil, amount, s.recordRateChange(actor, "base_rate"))
	if err != nil {
		return nil, err
	}

	s.logger.Info("base rate changed",
		slog.String("rate_id", next.ID.String()),
		slog.String("amount_per_hour", amount.String()),
		slog.String("user_id", actor.UserID),
	)

	return next, nil
}

func (s *RateCatalog) SetBranchRate(ctx context.Context, actor audit.Actor, branchID uuid.UUID, amount decimal.Decimal) (*domain.Rate, error) {
	if err := domain.ValidateRateAmount(amount); err != nil {
		return nil, err
	}

	_, next, err := s.rates.Supersede(ctx, &branchID, amount, s.recordRateChange(actor, "branch_rate"))
	if err != nil {
		return nil, err
	}

	s.logger.Info("branch rate changed",
		slog.String("branch_id", branchID.String()),
		slog.String("rate_id", next.ID.String()),
		slog.String("amount_per_hour", amount.String()),
		slog.String("user_id", actor.UserID),
	)

	return next, nil
}

// ClearBranchRate closes the branch override so resolution falls back to the
// base rate.
func (s *RateCatalog) ClearBranchRate(ctx context.Context, actor audit.Actor, branchID uuid.UUID) error {
	_, err := s.rates.Clear(ctx, branchID, func(ctx context.Context, tx pgx.Tx, prev, _ *domain.Rate) error {
		return s.recordTx(ctx, tx, actor, "branch_rate", audit.OpDelete, prev, nil)
	})
	if err != nil {
		return err
	}

	s.logger.Info("branch rate cleared",
		slog.String("branch_id", branchID.String()),
		slog.String("user_id", actor.UserID),
	)

	return nil
}

func (s *RateCatalog) recordRateChange(actor audit.Actor, entity string) repository.TxFunc {
	return func(ctx context.Context, tx pgx.Tx, prev, next *domain.Rate) error {
		op := audit.OpUpdate
		if prev == nil {
			op = audit.OpInsert
		}
		return s.recordTx(ctx, tx, actor, entity, op, prev, next)
	}
}

func (s *RateCatalog) recordTx(ctx context.Context, tx pgx.Tx, actor audit.Actor, entity string, op audit.OperationType, prev, next *domain.Rate) error {
	var prevSnap, nextSnap []byte
	var err error

	if prev != nil {
		if prevSnap, err = audit.Snapshot(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if nextSnap, err = audit.Snapshot(next); err != nil {
			return err
		}
	}

	entry := &audit.Entry{
		Module:         audit.ModuleRates,
		Entity:         entity,
		Operation:      op,
		UserID:         actor.UserID,
		PreviousValues: prevSnap,
		NewValues:      nextSnap,
		ClientIP:       actor.ClientIP,
	}

	if err := s.recorder.RecordTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("audit rate change: %w", err)
	}
	return nil
}
