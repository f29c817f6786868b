package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing is a collector's offer of recyclable material. Orders reference a
// listing, and the listing owner is the only collector allowed to move an
// order through its lifecycle.
type Listing struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string  `gorm:"type:uuid;index;not null" json:"userId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	WasteType   string  `gorm:"size:50;index" json:"wasteType"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `gorm:"not null" json:"price"`
	Location    string  `gorm:"size:255" json:"location"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
