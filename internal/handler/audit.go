package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cleantube/cleantube-go/internal/middleware"
	"github.com/cleantube/cleantube-go/internal/model"
	"github.com/cleantube/cleantube-go/internal/service"
)

type AuditHandler struct {
	store service.AuditStore
}

func NewAuditHandler(store service.AuditStore) *AuditHandler {
	return &AuditHandler{store: store}
}

// GetStats handles GET /api/stats
func (h *AuditHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.store.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}
	return c.JSON(stats)
}

// Export handles GET /api/audit/export
// Serves the recent moderation history as a downloadable JSON document.
func (h *AuditHandler) Export(c fiber.Ctx) error {
	limit := fiber.Query[int](c, "limit")

	records, err := h.store.List(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read audit history")
	}
	if records == nil {
		records = []model.AuditRecord{}
	}

	c.Set("Content-Disposition", "attachment; filename=moderation-audit.json")
	return c.JSON(fiber.Map{
		"count":   len(records),
		"actions": records,
	})
}
