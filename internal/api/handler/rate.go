package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/api/middleware"
	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/domain"
)

type RateService interface {
	ResolveRate(ctx context.Context, branchID uuid.UUID, at time.Time) (*domain.Rate, error)
	SetBaseRate(ctx context.Context, actor audit.Actor, amount decimal.Decimal) (*domain.Rate, error)
	SetBranchRate(ctx context.Context, actor audit.Actor, branchID uuid.UUID, amount decimal.Decimal) (*domain.Rate, error)
	ClearBranchRate(ctx context.Context, actor audit.Actor, branchID uuid.UUID) error
}

// RateHandler exposes the rate catalog administration endpoints
type RateHandler struct {
	service RateService
	logger  *slog.Logger
}

func NewRateHandler(service RateService, logger *slog.Logger) *RateHandler {
	return &RateHandler{service: service, logger: logger}
}

type SetRateRequest struct {
	AmountPerHour string `json:"amount_per_hour"`
}

func (r *SetRateRequest) amount() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(r.AmountPerHour)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount.WithError(err)
	}
	return amount, nil
}

// Current handles GET /v1/branches/:id/rate?at=2025-06-18T15:00:00Z
func (h *RateHandler) Current(c *fiber.Ctx) error {
	branchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("branch id must be a valid UUID"))
	}

	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return domain.ErrBadRequest.WithError(errors.New("at must be RFC3339"))
		}
	}

	rate, err := h.service.ResolveRate(c.Context(), branchID, at)
	if err != nil {
		return err
	}

	return c.JSON(rate)
}

// SetBase handles PUT /v1/rates/base
func (h *RateHandler) SetBase(c *fiber.Ctx) error {
	var req SetRateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	amount, err := req.amount()
	if err != nil {
		return err
	}

	rate, err := h.service.SetBaseRate(c.Context(), middleware.GetActor(c), amount)
	if err != nil {
		return err
	}

	return c.JSON(rate)
}

// SetBranch handles PUT /v1/branches/:id/rate
func (h *RateHandler) SetBranch(c *fiber.Ctx) error {
	branchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("branch id must be a valid UUID"))
	}

	var req SetRateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	amount, err := req.amount()
	if err != nil {
		return err
	}

	rate, err := h.service.SetBranchRate(c.Context(), middleware.GetActor(c), branchID, amount)
	if err != nil {
		return err
	}

	return c.JSON(rate)
}

// ClearBranch handles DELETE /v1/branches/:id/rate
func (h *RateHandler) ClearBranch(c *fiber.Ctx) error {
	branchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("branch id must be a valid UUID"))
	}

	if err := h.service.ClearBranchRate(c.Context(), middleware.GetActor(c), branchID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
