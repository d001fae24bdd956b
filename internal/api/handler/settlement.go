package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/parqueo-gt/parqueo/internal/domain"
	"github.com/parqueo-gt/parqueo/internal/settlement"
)

type SettlementService interface {
	BenefitSummary(ctx context.Context, benefitID uuid.UUID, ref time.Time) (*settlement.BenefitSettlement, error)
	FleetSummary(ctx context.Context, fleetID uuid.UUID, ref time.Time) (*settlement.FleetSettlement, error)
}

// SettlementHandler serves reconciliation summaries for commerces and fleets
type SettlementHandler struct {
	service SettlementService
	logger  *slog.Logger
}

func NewSettlementHandler(service SettlementService, logger *slog.Logger) *SettlementHandler {
	return &SettlementHandler{service: service, logger: logger}
}

// Benefit handles GET /v1/settlements/benefits/:id?at=2025-06-18T00:00:00Z
func (h *SettlementHandler) Benefit(c *fiber.Ctx) error {
	benefitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("benefit id must be a valid UUID"))
	}

	ref, err := refTime(c)
	if err != nil {
		return err
	}

	summary, err := h.service.BenefitSummary(c.Context(), benefitID, ref)
	if err != nil {
		return err
	}

	return c.JSON(summary)
}

// Fleet handles GET /v1/settlements/fleets/:id?at=2025-06-18T00:00:00Z
func (h *SettlementHandler) Fleet(c *fiber.Ctx) error {
	fleetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("fleet id must be a valid UUID"))
	}

	ref, err := refTime(c)
	if err != nil {
		return err
	}

	summary, err := h.service.FleetSummary(c.Context(), fleetID, ref)
	if err != nil {
		return err
	}

	return c.JSON(summary)
}

// refTime reads the optional `at` query parameter selecting which settlement
// window to report; defaults to the current one.
func refTime(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("at")
	if raw == "" {
		return time.Now().UTC(), nil
	}

	ref, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.ErrBadRequest.WithError(errors.New("at must be RFC3339"))
	}
	return ref, nil
}
