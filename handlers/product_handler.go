package handlers

import (
	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service/catalog"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *catalog.Service
}

func NewProductHandler(svc *catalog.Service) *ProductHandler {
	return &ProductHandler{Catalog: svc}
}

// GetAllProducts - GET /api/products?category=&q=&sort=&page=&limit=
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", catalog.DefaultLimit)

	result, err := h.Catalog.Browse(c.UserContext(), catalog.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"products":   result.Products,
		"pagination": result.Pagination,
	})
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.Catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"product": product})
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req catalog.ProductInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.Catalog.Create(c.UserContext(), s, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusCreated, fiber.Map{"product": product})
}

// GetCategories - GET /api/categories
func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"categories": categories})
}

// GetListings - GET /api/listings?wasteType=&userId=
func (h *ProductHandler) GetListings(c *fiber.Ctx) error {
	listings, err := h.Catalog.ListListings(c.UserContext(), repository.ListingFilter{
		UserID:    c.Query("userId"),
		WasteType: c.Query("wasteType"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"listings": listings})
}

// GetListing - GET /api/listings/:id
func (h *ProductHandler) GetListing(c *fiber.Ctx) error {
	listing, err := h.Catalog.GetListing(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"listing": listing})
}

// CreateListing - POST /api/listings
func (h *ProductHandler) CreateListing(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req catalog.ListingInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	listing, err := h.Catalog.CreateListing(c.UserContext(), s, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusCreated, fiber.Map{"listing": listing})
}
