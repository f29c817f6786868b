// Package events carries order lifecycle notifications out of the order
// service, to Kafka for other systems and to connected browsers.
package events

import (
	"context"
	"errors"
	"time"

	"ecorecycle_backend/models"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
)

type OrderEvent struct {
	Type           Type               `json:"type"`
	OrderID        string             `json:"orderId"`
	BuyerID        string             `json:"buyerId"`
	ListingID      string             `json:"listingId"`
	ListingOwnerID string             `json:"listingOwnerId"`
	Status         models.OrderStatus `json:"status"`
	Quantity       float64            `json:"quantity"`
	TotalPrice     float64            `json:"totalPrice"`
	OccurredAt     time.Time          `json:"occurredAt"`
}

// NewOrderEvent snapshots an order. ownerID is the listing's collector.
func NewOrderEvent(t Type, order *models.Order, ownerID string, at time.Time) OrderEvent {
	return OrderEvent{
		Type:           t,
		OrderID:        order.ID,
		BuyerID:        order.BuyerID,
		ListingID:      order.ListingID,
		ListingOwnerID: ownerID,
		Status:         order.Status,
		Quantity:       order.Quantity,
		TotalPrice:     order.TotalPrice,
		OccurredAt:     at,
	}
}

// Recipients are the users who should hear about the event.
func (e OrderEvent) Recipients() []string {
	var out []string
	if e.BuyerID != "" {
		out = append(out, e.BuyerID)
	}
	if e.ListingOwnerID != "" && e.ListingOwnerID != e.BuyerID {
		out = append(out, e.ListingOwnerID)
	}
	return out
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

type nop struct{}

func (nop) Publish(context.Context, OrderEvent) error { return nil }

// Nop discards events.
var Nop Publisher = nop{}

type multi []Publisher

// Multi fans an event out to every publisher. All of them are tried; their
// errors are joined.
func Multi(publishers ...Publisher) Publisher {
	return multi(publishers)
}

func (m multi) Publish(ctx context.Context, event OrderEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
