package repository

import (
	"context"

	"ecorecycle_backend/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// AddPointsToRole credits every user of the role and returns how many
	// accounts were touched.
	AddPointsToRole(ctx context.Context, role models.Role, points int) (int64, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	IDsByOwner(ctx context.Context, userID string) ([]string, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)

	// limit <= 0 means no limit. Results are newest first.
	ListByBuyer(ctx context.Context, buyerID string, limit int) ([]models.Order, error)
	ListByListings(ctx context.Context, listingIDs []string, limit int) ([]models.Order, error)
	CountByBuyer(ctx context.Context, buyerID string) (int64, error)
	TotalPricesByBuyer(ctx context.Context, buyerID string) ([]float64, error)
}

type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	// limit <= 0 means no limit. Results are ordered by pickup date, latest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Collection, error)
	UpdateStatus(ctx context.Context, id string, status models.CollectionStatus) (*models.Collection, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}
