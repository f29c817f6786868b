package repository

import (
	"context"
	"fmt"
	"strings"

	"ecorecycle_backend/models"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: user cannot be nil", ErrInvalidInput)
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return fmt.Errorf("%w: email required", ErrInvalidInput)
	}

	var existing int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: email %s already registered", ErrDuplicate, user.Email)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) AddPointsToRole(ctx context.Context, role models.Role, points int) (int64, error) {
	if points <= 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_type = ?", role).
		Update("points", gorm.Expr("points + ?", points))
	if res.Error != nil {
		return 0, fmt.Errorf("add %d points to %s users: %w", points, role, res.Error)
	}
	return res.RowsAffected, nil
}
