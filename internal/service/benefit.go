package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/domain"
	"github.com/parqueo-gt/parqueo/internal/repository"
)

type BenefitAdminStore interface {
	GetActiveByBranch(ctx context.Context, branchID uuid.UUID) (*domain.CommerceBenefit, error)
	Upsert(ctx context.Context, b *domain.CommerceBenefit, record repository.BenefitTxFunc) (*domain.CommerceBenefit, error)
	Deactivate(ctx context.Context, branchID uuid.UUID, record repository.BenefitTxFunc) (*domain.CommerceBenefit, error)
}

// BenefitService configures the single active commerce benefit per branch
type BenefitService struct {
	benefits BenefitAdminStore
	branches BranchStore
	recorder audit.Recorder
	logger   *slog.Logger
}

func NewBenefitService(benefits BenefitAdminStore, branches BranchStore, recorder audit.Recorder, logger *slog.Logger) *BenefitService {
	return &BenefitService{
		benefits: benefits,
		branches: branches,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *BenefitService) GetActive(ctx context.Context, branchID uuid.UUID) (*domain.CommerceBenefit, error) {
	return s.benefits.GetActiveByBranch(ctx, branchID)
}

// Configure installs or replaces the branch's active benefit
func (s *BenefitService) Configure(ctx context.Context, actor audit.Actor, benefit *domain.CommerceBenefit) error {
	if err := benefit.Validate(); err != nil {
		return err
	}

	if _, err := s.branches.GetByID(ctx, benefit.BranchID); err != nil {
		return err
	}

	_, err := s.benefits.Upsert(ctx, benefit, s.recordBenefitChange(actor))
	if err != nil {
		return err
	}

	s.logger.Info("benefit configured",
		slog.String("benefit_id", benefit.ID.String()),
		slog.String("branch_id", benefit.BranchID.String()),
		slog.String("benefit_type", string(benefit.BenefitType)),
		slog.String("user_id", actor.UserID),
	)

	return nil
}

func (s *BenefitService) Deactivate(ctx context.Context, actor audit.Actor, branchID uuid.UUID) error {
	prev, err := s.benefits.Deactivate(ctx, branchID, s.recordBenefitChange(actor))
	if err != nil {
		return err
	}

	s.logger.Info("benefit deactivated",
		slog.String("benefit_id", prev.ID.String()),
		slog.String("branch_id", branchID.String()),
		slog.String("user_id", actor.UserID),
	)

	return nil
}

func (s *BenefitService) recordBenefitChange(actor audit.Actor) repository.BenefitTxFunc {
	return func(ctx context.Context, tx pgx.Tx, prev, next *domain.CommerceBenefit) error {
		op := audit.OpUpdate
		switch {
		case prev == nil:
			op = audit.OpInsert
		case next != nil && !next.IsActive:
			op = audit.OpDelete
		}

		prevSnap, err := audit.Snapshot(ptrOrNil(prev))
		if err != nil {
			return err
		}
		nextSnap, err := audit.Snapshot(ptrOrNil(next))
		if err != nil {
			return err
		}

		entry := &audit.Entry{
			Module:         audit.ModuleBenefits,
			Entity:         "commerce_benefit",
			Operation:      op,
			UserID:         actor.UserID,
			PreviousValues: prevSnap,
			NewValues:      nextSnap,
			ClientIP:       actor.ClientIP,
		}

		if err := s.recorder.RecordTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("audit benefit change: %w", err)
		}
		return nil
	}
}

// ptrOrNil keeps a typed nil pointer from reaching json.Marshal as a
// non-nil interface
func ptrOrNil[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return p
}
