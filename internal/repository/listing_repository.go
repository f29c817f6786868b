package repository

import (
	"context"
	"fmt"

	"ecorecycle_backend/models"

	"gorm.io/gorm"
)

type listingRepo struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, l *models.Listing) error {
	if l.UserID == "" {
		return fmt.Errorf("%w: listing owner required", ErrInvalidInput)
	}
	if l.Title == "" {
		return fmt.Errorf("%w: listing title required", ErrInvalidInput)
	}
	if l.Price < 0 {
		return fmt.Errorf("%w: listing price cannot be negative", ErrInvalidInput)
	}

	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create listing: %w", translate(err))
	}
	return nil
}

func (r *listingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&listing, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (r *listingRepo) List(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	query := r.db.WithContext(ctx).Preload("User")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.WasteType != "" {
		query = query.Where("waste_type = ?", filter.WasteType)
	}

	listings := []models.Listing{}
	if err := query.Order("created_at desc").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

func (r *listingRepo) IDsByOwner(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing ids of %s: %w", userID, err)
	}
	return ids, nil
}
