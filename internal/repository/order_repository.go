package repository

import (
	"context"
	"fmt"

	"ecorecycle_backend/models"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

// withRelations loads the listing (and its owner) and the buyer, which every
// order view shows.
func (r *orderRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.User").
		Preload("Buyer")
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order cannot be nil", ErrInvalidInput)
	}
	if order.BuyerID == "" || order.ListingID == "" {
		return fmt.Errorf("%w: buyer and listing required", ErrInvalidInput)
	}
	if order.Quantity < 0 || order.TotalPrice < 0 {
		return fmt.Errorf("%w: quantity and total price cannot be negative", ErrInvalidInput)
	}

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", translate(err))
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.withRelations(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepo) ListByBuyer(ctx context.Context, buyerID string, limit int) ([]models.Order, error) {
	query := r.withRelations(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	orders := []models.Order{}
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("orders of buyer %s: %w", buyerID, err)
	}
	return orders, nil
}

func (r *orderRepo) ListByListings(ctx context.Context, listingIDs []string, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	if len(listingIDs) == 0 {
		return orders, nil
	}

	query := r.withRelations(ctx).
		Where("listing_id IN ?", listingIDs).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("orders of %d listings: %w", len(listingIDs), err)
	}
	return orders, nil
}

func (r *orderRepo) CountByBuyer(ctx context.Context, buyerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count orders of buyer %s: %w", buyerID, err)
	}
	return count, nil
}

func (r *orderRepo) TotalPricesByBuyer(ctx context.Context, buyerID string) ([]float64, error) {
	prices := []float64{}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		Pluck("total_price", &prices).Error
	if err != nil {
		return nil, fmt.Errorf("order totals of buyer %s: %w", buyerID, err)
	}
	return prices, nil
}
