package handlers

import (
	"ecorecycle_backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{Users: users}
}

// GetMe - GET /api/me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.Users.GetByID(c.UserContext(), s.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"user": user})
}
