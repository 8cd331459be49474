package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/cleantube/cleantube-go/internal/analyzer"
	"github.com/cleantube/cleantube-go/internal/middleware"
	"github.com/cleantube/cleantube-go/internal/service"
)

// respondError maps the error taxonomy to API responses. Input errors
// carry their own message, transport errors get a generic retry
// message, and server-reported failures surface the upstream message
// verbatim.
func respondError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptySelection):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "EMPTY_SELECTION", "No comments selected")
	case errors.Is(err, service.ErrDeleteInFlight):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "DELETE_IN_FLIGHT", "A deletion for this video is already in progress")
	case errors.Is(err, analyzer.ErrTransport):
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Action failed, try again")
	}

	var serverErr *analyzer.ServerError
	if errors.As(err, &serverErr) {
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", serverErr.Message)
	}

	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
}
