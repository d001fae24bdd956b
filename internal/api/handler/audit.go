package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/parqueo-gt/parqueo/internal/audit"
)

type AuditLogReader interface {
	List(ctx context.Context, module string, limit int) ([]audit.Entry, error)
}

// AuditHandler serves the read-only audit trail
type AuditHandler struct {
	repo   AuditLogReader
	logger *slog.Logger
}

func NewAuditHandler(repo AuditLogReader, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{repo: repo, logger: logger}
}

// List handles GET /v1/audit?module=tarifas&limit=50
func (h *AuditHandler) List(c *fiber.Ctx) error {
	entries, err := h.repo.List(c.Context(), c.Query("module"), c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"entries": entries})
}
