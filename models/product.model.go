package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    string  `gorm:"type:uuid;index" json:"sellerId"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50;index" json:"category"` // accessories, home, furniture, ...
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
	Quantity    int     `gorm:"default:0" json:"quantity"`
	Discount    float64 `gorm:"default:0" json:"discount"` // percent
	Rating      float64 `gorm:"default:0" json:"rating"`
	Reviews     int     `gorm:"default:0" json:"reviews"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SellerSummary is what the product page shows about who sells an item.
type SellerSummary struct {
	ID       *string `json:"id"`
	Name     string  `json:"name"`
	UserType string  `json:"userType"`
}

// UnknownSeller is reported when a product's seller record is gone.
var UnknownSeller = SellerSummary{Name: "Unknown Seller", UserType: "unknown"}

type ProductDetail struct {
	Product
	Seller SellerSummary `json:"seller"`
}
