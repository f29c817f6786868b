package handlers

import (
	"errors"
	"log"
	"strings"

	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Users repository.UserRepository
	JWT   *utils.JWTManager
}

func NewAuthHandler(users repository.UserRepository, jwt *utils.JWTManager) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwt}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	UserType    string `json:"userType"`
	PhoneNumber string `json:"phoneNumber" validate:"max=20"`
	Address     string `json:"address"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register - POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	role, err := models.ParseRole(req.UserType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user type"))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not hash password"))
	}

	user := models.User{
		Name:        strings.TrimSpace(req.Name),
		Email:       req.Email,
		Password:    hashedPassword,
		UserType:    role,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
	if err := h.Users.Create(c.UserContext(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("User already exists"))
		}
		return respondError(c, err)
	}
	log.Printf("User %s registered as %s", user.ID, user.UserType)

	return success(c, fiber.StatusCreated, fiber.Map{"user": user.Summary()})
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.Users.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid credentials"))
		}
		return respondError(c, err)
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid credentials"))
	}

	token, err := h.JWT.Generate(user.ID, user.UserType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not login"))
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user.Summary(),
	})
}
