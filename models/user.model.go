package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// Login
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	Name        string `gorm:"size:100;not null" json:"name"`
	PhoneNumber string `gorm:"size:20" json:"phoneNumber"`
	Address     string `gorm:"type:text" json:"address"`

	UserType Role `gorm:"size:20;not null;default:'individual';index" json:"userType"`
	// Only ever changed by the points distributor.
	Points int `gorm:"not null;default:0" json:"points"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSummary is the slice of a user embedded in orders and products.
type UserSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	UserType    Role   `json:"userType,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		UserType:    u.UserType,
	}
}
