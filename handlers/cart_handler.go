package handlers

import (
	"ecorecycle_backend/internal/cart"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

type QuoteRequest struct {
	Items []cart.Item `json:"items" validate:"dive"`
}

// Quote - POST /api/cart/quote
func (h *CartHandler) Quote(c *fiber.Ctx) error {
	var req QuoteRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	items := make([]cart.Item, len(req.Items))
	for i, it := range req.Items {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		items[i] = it
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"items":   items,
		"summary": cart.Quote(items),
	})
}
