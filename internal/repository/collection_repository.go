package repository

import (
	"context"
	"fmt"

	"ecorecycle_backend/models"

	"gorm.io/gorm"
)

type collectionRepo struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) Create(ctx context.Context, c *models.Collection) error {
	if c.UserID == "" {
		return fmt.Errorf("%w: collection owner required", ErrInvalidInput)
	}
	if c.Date.IsZero() {
		return fmt.Errorf("%w: collection date required", ErrInvalidInput)
	}
	if c.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}

	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create collection: %w", translate(err))
	}
	return nil
}

func (r *collectionRepo) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	var c models.Collection
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *collectionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Collection, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	collections := []models.Collection{}
	if err := query.Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("collections of user %s: %w", userID, err)
	}
	return collections, nil
}

func (r *collectionRepo) UpdateStatus(ctx context.Context, id string, status models.CollectionStatus) (*models.Collection, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Collection{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update status of collection %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
