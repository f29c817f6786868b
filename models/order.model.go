package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAccepted  OrderStatus = "ACCEPTED"
	OrderPaid      OrderStatus = "PAID"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var orderStatuses = []OrderStatus{
	OrderPending, OrderAccepted, OrderPaid, OrderDelivered, OrderCompleted, OrderCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, st := range orderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type Order struct {
	ID         string      `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID    string      `gorm:"type:uuid;index;not null" json:"buyerId"`
	ListingID  string      `gorm:"type:uuid;index;not null" json:"listingId"`
	Quantity   float64     `gorm:"not null;default:0" json:"quantity"`
	TotalPrice float64     `gorm:"not null;default:0" json:"totalPrice"`
	Status     OrderStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Buyer   *User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	return nil
}
