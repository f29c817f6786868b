package handlers

import (
	"ecorecycle_backend/internal/service/collection"

	"github.com/gofiber/fiber/v2"
)

type CollectionHandler struct {
	Collections *collection.Service
}

func NewCollectionHandler(svc *collection.Service) *CollectionHandler {
	return &CollectionHandler{Collections: svc}
}

type UpdateCollectionRequest struct {
	Status string `json:"status" validate:"required"`
}

// GetCollections - GET /api/collections?view=all|upcoming|past
func (h *CollectionHandler) GetCollections(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	view, err := collection.ParseView(c.Query("view"))
	if err != nil {
		return respondError(c, err)
	}

	collections, err := h.Collections.List(c.UserContext(), s, view)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"collections": collections})
}

// ScheduleCollection - POST /api/collections
func (h *CollectionHandler) ScheduleCollection(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req collection.ScheduleInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	created, err := h.Collections.Schedule(c.UserContext(), s, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusCreated, fiber.Map{"collection": created})
}

// UpdateCollection - PATCH /api/collections/:id
func (h *CollectionHandler) UpdateCollection(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateCollectionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	updated, err := h.Collections.UpdateStatus(c.UserContext(), s, c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"collection": updated})
}
