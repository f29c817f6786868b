// Package catalog serves the recycled goods marketplace: products sold by
// collectors and businesses, and the waste listings collectors post.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// ProductQuery is the marketplace browse request. Zero values select the
// first page of the newest products across all categories.
type ProductQuery struct {
	Category string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

type ProductPage struct {
	Products   []models.Product      `json:"products"`
	Pagination models.PaginationMeta `json:"pagination"`
}

type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
}

type ListingInput struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	WasteType   string  `json:"wasteType" validate:"required,max=50"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Location    string  `json:"location" validate:"max=255"`
}

type Service struct {
	products repository.ProductRepository
	listings repository.ListingRepository
	users    repository.UserRepository
}

func NewService(products repository.ProductRepository, listings repository.ListingRepository, users repository.UserRepository) *Service {
	return &Service{products: products, listings: listings, users: users}
}

func parseSort(s string) (repository.ProductSort, error) {
	switch sort := repository.ProductSort(strings.ToLower(strings.TrimSpace(s))); sort {
	case "":
		return repository.SortNewest, nil
	case repository.SortNewest, repository.SortPriceLow, repository.SortPriceHigh, repository.SortRating:
		return sort, nil
	}
	return "", fmt.Errorf("%w: unknown sort %q", repository.ErrInvalidInput, s)
}

func (s *Service) Browse(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	sort, err := parseSort(q.Sort)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1 || limit > MaxLimit:
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", repository.ErrInvalidInput, MaxLimit)
	}

	category := strings.TrimSpace(q.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}

	products, total, err := s.products.Search(ctx, repository.ProductFilter{
		Category: category,
		Search:   q.Search,
		Sort:     sort,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:   products,
		Pagination: models.NewPaginationMeta(page, limit, total),
	}, nil
}

// Get returns the product with a summary of its seller. Products whose
// seller record is missing report models.UnknownSeller.
func (s *Service) Get(ctx context.Context, id string) (*models.ProductDetail, error) {
	productID, err := service.ParseID("product", id)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %w", repository.ErrNotFound)
		}
		return nil, err
	}

	detail := &models.ProductDetail{Product: *product, Seller: models.UnknownSeller}
	if product.SellerID == "" {
		return detail, nil
	}

	seller, err := s.users.GetByID(ctx, product.SellerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("Seller %s of product %s not found", product.SellerID, product.ID)
	case err != nil:
		return nil, err
	default:
		sellerID := seller.ID
		detail.Seller = models.SellerSummary{ID: &sellerID, Name: seller.Name, UserType: string(seller.UserType)}
	}
	return detail, nil
}

func (s *Service) Create(ctx context.Context, session utils.Session, in ProductInput) (*models.Product, error) {
	if !session.Role.IsSeller() {
		return nil, fmt.Errorf("%w: only collectors and businesses can sell products", service.ErrForbidden)
	}

	product := &models.Product{
		SellerID:    session.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		Image:       in.Image,
		Quantity:    in.Quantity,
		InStock:     in.Quantity > 0,
		Discount:    in.Discount,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("Product %s listed by %s", product.ID, session.UserID)
	return product, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.products.Categories(ctx)
}

func (s *Service) CreateListing(ctx context.Context, session utils.Session, in ListingInput) (*models.Listing, error) {
	if session.Role != models.RoleCollector {
		return nil, fmt.Errorf("%w: only collectors can post listings", service.ErrForbidden)
	}

	listing := &models.Listing{
		UserID:      session.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		WasteType:   strings.ToLower(strings.TrimSpace(in.WasteType)),
		Quantity:    in.Quantity,
		Price:       in.Price,
		Location:    in.Location,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	log.Printf("Listing %s posted by %s", listing.ID, session.UserID)
	return listing, nil
}

func (s *Service) ListListings(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error) {
	if filter.UserID != "" {
		id, err := service.ParseID("user", filter.UserID)
		if err != nil {
			return nil, err
		}
		filter.UserID = id
	}
	filter.WasteType = strings.ToLower(strings.TrimSpace(filter.WasteType))
	return s.listings.List(ctx, filter)
}

func (s *Service) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	listingID, err := service.ParseID("listing", id)
	if err != nil {
		return nil, err
	}
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("listing %w", repository.ErrNotFound)
		}
		return nil, err
	}
	return listing, nil
}
