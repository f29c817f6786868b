package handlers

import (
	"ecorecycle_backend/internal/service/order"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *order.Service
}

func NewOrderHandler(orders *order.Service) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// CreateOrderRequest accepts productId from older clients in place of listingId.
type CreateOrderRequest struct {
	ListingID  string  `json:"listingId"`
	ProductID  string  `json:"productId"`
	Quantity   float64 `json:"quantity" validate:"gte=0"`
	TotalPrice float64 `json:"totalPrice" validate:"gte=0"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// GetOrders - GET /api/orders
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	orders, err := h.Orders.ListOrdersForUser(c.UserContext(), s)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"orders":     orders,
		"totalCount": len(orders),
	})
}

// CreateOrder - POST /api/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	created, err := h.Orders.CreateOrder(c.UserContext(), s, order.CreateInput{
		ListingID:  req.ListingID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Order placed successfully", "order": created})
}

// GetOrder - GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	if _, err := session(c); err != nil {
		return respondError(c, err)
	}

	o, err := h.Orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"order": o})
}

// UpdateOrder - PATCH /api/orders/:id
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	updated, err := h.Orders.UpdateOrderStatus(c.UserContext(), s, c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Order status updated successfully", "order": updated})
}
