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

type FleetService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Fleet, error)
	SetDiscount(ctx context.Context, actor audit.Actor, fleetID uuid.UUID, pct decimal.Decimal) (*domain.Fleet, error)
	AddVehicle(ctx context.Context, actor audit.Actor, fleetID uuid.UUID, plate string, planCode domain.PlanCode) (*domain.FleetVehicle, error)
}

// FleetHandler administers corporate fleets
type FleetHandler struct {
	service FleetService
	logger  *slog.Logger
}

func NewFleetHandler(service FleetService, logger *slog.Logger) *FleetHandler {
	return &FleetHandler{service: service, logger: logger}
}

type SetDiscountRequest struct {
	CorporateDiscountPct string `json:"corporate_discount_percentage"`
}

type AddVehicleRequest struct {
	LicensePlate string `json:"license_plate"`
	PlanCode     string `json:"plan_code"`
}

// Get handles GET /v1/fleets/:id
func (h *FleetHandler) Get(c *fiber.Ctx) error {
	fleetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("fleet id must be a valid UUID"))
	}

	fleet, err := h.service.Get(c.Context(), fleetID)
	if err != nil {
		return err
	}

	return c.JSON(fleet)
}

// SetDiscount handles PUT /v1/fleets/:id/discount
func (h *FleetHandler) SetDiscount(c *fiber.Ctx) error {
	fleetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("fleet id must be a valid UUID"))
	}

	var req SetDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	pct, err := decimal.NewFromString(req.CorporateDiscountPct)
	if err != nil {
		return domain.ErrInvalidDiscount.WithError(err)
	}

	fleet, err := h.service.SetDiscount(c.Context(), middleware.GetActor(c), fleetID, pct)
	if err != nil {
		return err
	}

	return c.JSON(fleet)
}

// AddVehicle handles POST /v1/fleets/:id/vehicles
func (h *FleetHandler) AddVehicle(c *fiber.Ctx) error {
	fleetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("fleet id must be a valid UUID"))
	}

	var req AddVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	vehicle, err := h.service.AddVehicle(c.Context(), middleware.GetActor(c), fleetID, req.LicensePlate, domain.PlanCode(req.PlanCode))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(vehicle)
}
