package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/domain"
)

type PlanAdminStore interface {
	Get(ctx context.Context, code domain.PlanCode) (*domain.SubscriptionPlan, error)
	List(ctx context.Context) ([]domain.SubscriptionPlan, error)
	Update(ctx context.Context, plan *domain.SubscriptionPlan, record func(ctx context.Context, tx pgx.Tx, prev *domain.SubscriptionPlan) error) error
}

// PlanService edits the five fixed subscription plans. There is no create or
// delete path: the catalog identities are closed.
type PlanService struct {
	plans    PlanAdminStore
	recorder audit.Recorder
	logger   *slog.Logger
}

func NewPlanService(plans PlanAdminStore, recorder audit.Recorder, logger *slog.Logger) *PlanService {
	return &PlanService{
		plans:    plans,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *PlanService) Get(ctx context.Context, code domain.PlanCode) (*domain.SubscriptionPlan, error) {
	if !code.Valid() {
		return nil, domain.ErrPlanNotFound
	}
	return s.plans.Get(ctx, code)
}

func (s *PlanService) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return s.plans.List(ctx)
}

// Update edits the hours and discount parameters of one plan. Changes take
// effect on the next billing cycle of each subscription; tickets already
// closed keep the charge they settled with.
func (s *PlanService) Update(ctx context.Context, actor audit.Actor, plan *domain.SubscriptionPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	err := s.plans.Update(ctx, plan, func(ctx context.Context, tx pgx.Tx, prev *domain.SubscriptionPlan) error {
		prevSnap, err := audit.Snapshot(prev)
		if err != nil {
			return err
		}
		nextSnap, err := audit.Snapshot(plan)
		if err != nil {
			return err
		}

		entry := &audit.Entry{
			Module:         audit.ModulePlans,
			Entity:         "subscription_plan",
			Operation:      audit.OpUpdate,
			UserID:         actor.UserID,
			PreviousValues: prevSnap,
			NewValues:      nextSnap,
			ClientIP:       actor.ClientIP,
		}

		if err := s.recorder.RecordTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("audit plan change: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("plan updated",
		slog.String("plan_code", string(plan.Code)),
		slog.String("monthly_hours", plan.MonthlyHours.String()),
		slog.String("user_id", actor.UserID),
	)

	return nil
}
