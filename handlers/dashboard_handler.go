package handlers

import (
	"ecorecycle_backend/internal/service/dashboard"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Dashboard *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{Dashboard: svc}
}

// GetDashboard - GET /api/dashboard
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	d, err := h.Dashboard.Build(c.UserContext(), s)
	if err != nil {
		return respondError(c, err)
	}

	payload := fiber.Map{
		"collections":      d.Collections,
		"products":         d.Products,
		"points":           d.Points,
		"totalCollections": d.TotalCollections,
		"totalProducts":    d.TotalProducts,
		"totalOrders":      d.TotalOrders,
		"recentActivity":   d.RecentActivity,
	}
	if d.Orders != nil {
		payload["orders"] = d.Orders
	}
	if d.TotalSpent != nil {
		payload["totalSpent"] = *d.TotalSpent
	}
	if d.TotalRevenue != nil {
		payload["totalRevenue"] = *d.TotalRevenue
	}
	return success(c, fiber.StatusOK, payload)
}
