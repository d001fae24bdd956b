package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/parqueo-gt/parqueo/internal/domain"
)

type TicketService interface {
	RegisterEntry(ctx context.Context, branchID uuid.UUID, plate, vehicleType string) (*domain.Ticket, error)
	RegisterExit(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, *domain.Charge, error)
	ChargePreview(ctx context.Context, ticketID uuid.UUID) (*domain.Charge, error)
	FindByFolio(ctx context.Context, folio string) (*domain.Ticket, error)
	FindByPlate(ctx context.Context, plate string) ([]domain.Ticket, error)
}

// TicketHandler exposes the ticket lifecycle to the gate terminals
type TicketHandler struct {
	service TicketService
	logger  *slog.Logger
}

func NewTicketHandler(service TicketService, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{service: service, logger: logger}
}

type EntryRequest struct {
	BranchID     string `json:"branch_id"`
	LicensePlate string `json:"license_plate"`
	VehicleType  string `json:"vehicle_type"`
}

type ExitResponse struct {
	Ticket *domain.Ticket `json:"ticket"`
	Charge *domain.Charge `json:"charge"`
}

// Entry handles POST /v1/tickets/entry
func (h *TicketHandler) Entry(c *fiber.Ctx) error {
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("branch_id must be a valid UUID"))
	}
	if req.VehicleType == "" {
		return domain.ErrValidationFailed.WithError(errors.New("vehicle_type is required"))
	}

	ticket, err := h.service.RegisterEntry(c.Context(), branchID, req.LicensePlate, req.VehicleType)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// Exit handles POST /v1/tickets/:id/exit
func (h *TicketHandler) Exit(c *fiber.Ctx) error {
	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("ticket id must be a valid UUID"))
	}

	ticket, charge, err := h.service.RegisterExit(c.Context(), ticketID)
	if err != nil {
		return err
	}

	return c.JSON(ExitResponse{Ticket: ticket, Charge: charge})
}

// ChargePreview handles GET /v1/tickets/:id/charge-preview
func (h *TicketHandler) ChargePreview(c *fiber.Ctx) error {
	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("ticket id must be a valid UUID"))
	}

	charge, err := h.service.ChargePreview(c.Context(), ticketID)
	if err != nil {
		return err
	}

	return c.JSON(charge)
}

// GetByFolio handles GET /v1/tickets/folio/:folio
func (h *TicketHandler) GetByFolio(c *fiber.Ctx) error {
	folio := c.Params("folio")
	if folio == "" {
		return domain.ErrBadRequest
	}

	ticket, err := h.service.FindByFolio(c.Context(), folio)
	if err != nil {
		return err
	}

	return c.JSON(ticket)
}

// Search handles GET /v1/tickets?license_plate=P123ABC (lost ticket path)
func (h *TicketHandler) Search(c *fiber.Ctx) error {
	plate := c.Query("license_plate")
	if plate == "" {
		return domain.ErrBadRequest.WithError(errors.New("license_plate query parameter is required"))
	}

	tickets, err := h.service.FindByPlate(c.Context(), plate)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"tickets": tickets})
}
