package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodes the JSON body into dst and validates it.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: request body is not valid JSON", repository.ErrInvalidInput)
	}
	return validate.Struct(dst)
}

func success(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func session(c *fiber.Ctx) (utils.Session, error) {
	s, ok := utils.CurrentSession(c)
	if !ok {
		return utils.Session{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return s, nil
}

// respondError renders err as the error envelope with the status its kind
// maps to. Unexpected errors are logged and hidden from the client.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	var ferr *fiber.Error

	switch {
	case errors.As(err, &verrs):
		details := make([]models.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, models.ErrorDetail{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Validation failed", details...))
	case errors.As(err, &ferr):
		return c.Status(ferr.Code).JSON(models.ErrorResponse(ferr.Message))
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(message(err, service.ErrForbidden)))
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(message(err, repository.ErrNotFound)))
	case errors.Is(err, repository.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(message(err, repository.ErrInvalidInput)))
	case errors.Is(err, repository.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse(message(err, repository.ErrDuplicate)))
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse(message(err, service.ErrConflict)))
	}

	log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
}

// message drops the sentinel prefix added by fmt.Errorf("%w: ...").
func message(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != "" {
		return trimmed
	}
	return msg
}
