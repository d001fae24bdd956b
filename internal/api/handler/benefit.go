package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parqueo-gt/parqueo/internal/api/middleware"
	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/domain"
)

type BenefitService interface {
	GetActive(ctx context.Context, branchID uuid.UUID) (*domain.CommerceBenefit, error)
	Configure(ctx context.Context, actor audit.Actor, benefit *domain.CommerceBenefit) error
	Deactivate(ctx context.Context, actor audit.Actor, branchID uuid.UUID) error
}

// BenefitHandler configures the commerce benefit of a branch
type BenefitHandler struct {
	service BenefitService
	logger  *slog.Logger
}

func NewBenefitHandler(service BenefitService, logger *slog.Logger) *BenefitHandler {
	return &BenefitHandler{service: service, logger: logger}
}

type ConfigureBenefitRequest struct {
	CommerceID       string `json:"commerce_id"`
	BenefitType      string `json:"benefit_type"`
	DiscountMode     string `json:"discount_mode,omitempty"`
	DiscountValue    string `json:"discount_value,omitempty"`
	SettlementPeriod string `json:"settlement_period"`
}

// Get handles GET /v1/branches/:id/benefit
func (h *BenefitHandler) Get(c *fiber.Ctx) error {
	branchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("branch id must be a valid UUID"))
	}

	benefit, err := h.service.GetActive(c.Context(), branchID)
	if err != nil {
		return err
	}

	return c.JSON(benefit)
}

// Configure handles PUT /v1/branches/:id/benefit
func (h *BenefitHandler) Configure(c *fiber.Ctx) error {
	branchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("branch id must be a valid UUID"))
	}

	var req ConfigureBenefitRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	commerceID, err := uuid.Parse(req.CommerceID)
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("commerce_id must be a valid UUID"))
	}

	value := decimal.Zero
	if req.DiscountValue != "" {
		value, err = decimal.NewFromString(req.DiscountValue)
		if err != nil {
			return domain.ErrInvalidBenefit.WithError(err)
		}
	}

	benefit := &domain.CommerceBenefit{
		CommerceID:       commerceID,
		BranchID:         branchID,
		BenefitType:      req.BenefitType,
		DiscountMode:     req.DiscountMode,
		DiscountValue:    value,
		SettlementPeriod: domain.SettlementPeriod(req.SettlementPeriod),
	}

	if err := h.service.Configure(c.Context(), middleware.GetActor(c), benefit); err != nil {
		return err
	}

	return c.JSON(benefit)
}

// Deactivate handles DELETE /v1/branches/:id/benefit
func (h *BenefitHandler) Deactivate(c *fiber.Ctx) error {
	branchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("branch id must be a valid UUID"))
	}

	if err := h.service.Deactivate(c.Context(), middleware.GetActor(c), branchID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
