package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/api/middleware"
	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/domain"
)

type PlanService interface {
	Get(ctx context.Context, code domain.PlanCode) (*domain.SubscriptionPlan, error)
	List(ctx context.Context) ([]domain.SubscriptionPlan, error)
	Update(ctx context.Context, actor audit.Actor, plan *domain.SubscriptionPlan) error
}

// PlanHandler exposes the fixed plan catalog. Plans can be listed and edited;
// there is deliberately no create or delete route.
type PlanHandler struct {
	service PlanService
	logger  *slog.Logger
}

func NewPlanHandler(service PlanService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{service: service, logger: logger}
}

type UpdatePlanRequest struct {
	MonthlyHours           string `json:"monthly_hours"`
	MonthlyDiscountPct     string `json:"monthly_discount_percentage"`
	AnnualExtraDiscountPct string `json:"annual_additional_discount_percentage"`
	BillingFrequency       string `json:"billing_frequency"`
}

// List handles GET /v1/plans
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"plans": plans})
}

// Get handles GET /v1/plans/:code
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	plan, err := h.service.Get(c.Context(), domain.PlanCode(c.Params("code")))
	if err != nil {
		return err
	}

	return c.JSON(plan)
}

// Update handles PUT /v1/plans/:code
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	var req UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	hours, err := decimal.NewFromString(req.MonthlyHours)
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}
	monthlyPct, err := decimal.NewFromString(req.MonthlyDiscountPct)
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}
	annualPct, err := decimal.NewFromString(req.AnnualExtraDiscountPct)
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	plan := &domain.SubscriptionPlan{
		Code:                   domain.PlanCode(c.Params("code")),
		MonthlyHours:           hours,
		MonthlyDiscountPct:     monthlyPct,
		AnnualExtraDiscountPct: annualPct,
		BillingFrequency:       req.BillingFrequency,
	}

	if err := h.service.Update(c.Context(), middleware.GetActor(c), plan); err != nil {
		return err
	}

	return c.JSON(plan)
}
