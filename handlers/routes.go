package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth          *AuthHandler
	User          *UserHandler
	Order         *OrderHandler
	Dashboard     *DashboardHandler
	Product       *ProductHandler
	Collection    *CollectionHandler
	Cart          *CartHandler
	Upload        *UploadHandler
	Notifications *NotificationHandler
}

// SetupRoutes mounts the API. auth guards every route that needs a session.
func SetupRoutes(app *fiber.App, h Handlers, auth fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)

	// Public catalog
	api.Get("/products", h.Product.GetAllProducts)
	api.Get("/products/:id", h.Product.GetProduct)
	api.Get("/categories", h.Product.GetCategories)
	api.Get("/listings", h.Product.GetListings)
	api.Get("/listings/:id", h.Product.GetListing)
	api.Post("/cart/quote", h.Cart.Quote)

	api.Get("/me", auth, h.User.GetMe)
	api.Get("/dashboard", auth, h.Dashboard.GetDashboard)

	api.Post("/products", auth, h.Product.CreateProduct)
	api.Post("/listings", auth, h.Product.CreateListing)

	api.Get("/orders", auth, h.Order.GetOrders)
	api.Post("/orders", auth, h.Order.CreateOrder)
	api.Get("/orders/:id", auth, h.Order.GetOrder)
	api.Patch("/orders/:id", auth, h.Order.UpdateOrder)

	api.Get("/collections", auth, h.Collection.GetCollections)
	api.Post("/collections", auth, h.Collection.ScheduleCollection)
	api.Patch("/collections/:id", auth, h.Collection.UpdateCollection)

	api.Post("/uploads/image", auth, h.Upload.UploadImage)

	app.Get("/ws/notifications", auth, h.Notifications.WebSocketUpgradeMiddleware, h.Notifications.Handler())
}
