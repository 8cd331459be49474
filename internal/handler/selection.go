package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cleantube/cleantube-go/internal/middleware"
	"github.com/cleantube/cleantube-go/internal/model"
	"github.com/cleantube/cleantube-go/internal/service"
)

type SelectionHandler struct {
	sel      *service.SelectionManager
	analysis *service.AnalysisService
	mod      *service.ModerationService
}

func NewSelectionHandler(sel *service.SelectionManager, analysis *service.AnalysisService, mod *service.ModerationService) *SelectionHandler {
	return &SelectionHandler{sel: sel, analysis: analysis, mod: mod}
}

// Get handles GET /api/videos/:videoId/selection
func (h *SelectionHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	return c.JSON(h.selectionResponse(videoID, h.sel.Get(videoID)))
}

// Update handles POST /api/videos/:videoId/selection
// Body: {"add": [...], "remove": [...]} — both optional, applied in
// that order, both idempotent.
func (h *SelectionHandler) Update(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.SelectionUpdateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	add, errMsg := middleware.ValidateCommentIDs(req.Add)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	remove, errMsg := middleware.ValidateCommentIDs(req.Remove)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	sel := h.sel.Get(videoID)
	if len(add) > 0 {
		sel = h.sel.Add(videoID, add)
	}
	if len(remove) > 0 {
		sel = h.sel.Remove(videoID, remove)
	}
	return c.JSON(h.selectionResponse(videoID, sel))
}

// ToggleGroup handles POST /api/videos/:videoId/selection/group
// Selects the whole group when not fully selected, deselects otherwise.
func (h *SelectionHandler) ToggleGroup(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.GroupToggleRequest
	if err := c.Bind().JSON(&req); err != nil || req.GroupID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "groupId is required")
	}

	snap := h.analysis.Peek(videoID)
	if snap == nil {
		var err error
		snap, err = h.analysis.Get(c.Context(), middleware.Token(c), videoID, false)
		if err != nil {
			return respondError(c, err)
		}
	}

	group, ok := snap.Index.Group(req.GroupID)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "GROUP_NOT_FOUND", "No such duplicate group in the current analysis")
	}

	h.sel.ToggleGroup(videoID, group)
	return c.JSON(h.selectionResponse(videoID, h.sel.Get(videoID)))
}

// SelectAll handles POST /api/videos/:videoId/selection/all
// ?scope=all selects every comment in the batch; the default selects
// the suspicious set.
func (h *SelectionHandler) SelectAll(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	snap := h.analysis.Peek(videoID)
	if snap == nil {
		var err error
		snap, err = h.analysis.Get(c.Context(), middleware.Token(c), videoID, false)
		if err != nil {
			return respondError(c, err)
		}
	}

	universe := snap.Analysis.SuspiciousCommentIDs
	if fiber.Query[string](c, "scope") == "all" {
		universe = snap.CommentIDs()
	}

	sel := h.sel.SelectAll(videoID, universe)
	return c.JSON(h.selectionResponse(videoID, sel))
}

// Clear handles DELETE /api/videos/:videoId/selection
func (h *SelectionHandler) Clear(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	h.sel.Clear(videoID)
	return c.JSON(h.selectionResponse(videoID, service.SelectionSet{}))
}

func (h *SelectionHandler) selectionResponse(videoID string, sel service.SelectionSet) model.SelectionResponse {
	resp := model.SelectionResponse{
		VideoID:     videoID,
		SelectedIDs: sel.IDs(),
		Count:       sel.Len(),
		Phase:       h.mod.Phase(videoID),
	}
	if snap := h.analysis.Peek(videoID); snap != nil {
		for _, g := range snap.Index.Groups() {
			resp.Groups = append(resp.Groups, service.GroupSelectionState(g, sel))
		}
		resp.Memberships = service.GroupMemberships(snap.Index, sel)
	}
	return resp
}
