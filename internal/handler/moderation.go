package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cleantube/cleantube-go/internal/middleware"
	"github.com/cleantube/cleantube-go/internal/model"
	"github.com/cleantube/cleantube-go/internal/service"
)

type ModerationHandler struct {
	mod *service.ModerationService
}

func NewModerationHandler(mod *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{mod: mod}
}

// Delete handles POST /api/videos/:videoId/delete
// Without {"confirm": true} the response is the confirmation gate with
// the selection count echoed back; with it, the batched deletion is
// dispatched.
func (h *ModerationHandler) Delete(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.DeleteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if !req.Confirm {
		conf, err := h.mod.RequestDelete(videoID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(conf)
	}

	outcome, err := h.mod.ConfirmDelete(c.Context(), middleware.Token(c), videoID)
	if err != nil {
		return respondError(c, err)
	}

	Metrics.DeletionsTotal.WithLabelValues(string(model.ActionBulkDelete)).Inc()
	Metrics.CommentsDeleted.Add(float64(outcome.Requested))
	return c.JSON(outcome)
}

// Cleanup handles POST /api/videos/:videoId/cleanup — server-side
// deletion of all currently-known spam for the video.
func (h *ModerationHandler) Cleanup(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	outcome, err := h.mod.Cleanup(c.Context(), middleware.Token(c), videoID)
	if err != nil {
		return respondError(c, err)
	}

	Metrics.DeletionsTotal.WithLabelValues(string(model.ActionSpamCleanup)).Inc()
	return c.JSON(outcome)
}

// DeleteOne handles DELETE /api/comments/:commentId
// ?videoId=X lets the coordinator reconcile the selection and snapshot
// for the comment's video.
func (h *ModerationHandler) DeleteOne(c fiber.Ctx) error {
	commentID, errMsg := middleware.ValidateCommentID(c.Params("commentId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	videoID := fiber.Query[string](c, "videoId")
	if videoID != "" {
		videoID, errMsg = middleware.ValidateVideoID(videoID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}

	outcome, err := h.mod.DeleteOne(c.Context(), middleware.Token(c), videoID, commentID)
	if err != nil {
		return respondError(c, err)
	}

	Metrics.DeletionsTotal.WithLabelValues(string(model.ActionSingleDelete)).Inc()
	Metrics.CommentsDeleted.Inc()
	return c.JSON(outcome)
}
