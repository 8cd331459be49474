package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cleantube/cleantube-go/internal/middleware"
	"github.com/cleantube/cleantube-go/internal/service"
)

type AnalysisHandler struct {
	svc *service.AnalysisService
	mod *service.ModerationService
}

func NewAnalysisHandler(svc *service.AnalysisService, mod *service.ModerationService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, mod: mod}
}

// GetAnalysis handles GET /api/videos/:videoId/analysis
// ?refresh=true bypasses the cache and replaces the held snapshot.
func (h *AnalysisHandler) GetAnalysis(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	force := fiber.Query[bool](c, "refresh")

	done := h.mod.BeginLoading(videoID)
	snap, err := h.svc.Get(c.Context(), middleware.Token(c), videoID, force)
	done()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"analysis":  snap.Analysis,
		"comments":  snap.Comments,
		"riskLevel": snap.Risk,
		"phase":     h.mod.Phase(videoID),
	})
}

// GetEvidence handles GET /api/videos/:videoId/evidence
func (h *AnalysisHandler) GetEvidence(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	evidence, count, err := h.svc.Evidence(c.Context(), middleware.Token(c), videoID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"spamCount":    count,
		"spamComments": evidence,
	})
}
