package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ecorecycle_backend/internal/events"
	"ecorecycle_backend/internal/points"
	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"
)

type PointsDistributor interface {
	Distribute(ctx context.Context, points int) error
}

type CreateInput struct {
	ListingID string
	// ProductID is the legacy name for ListingID, honoured when ListingID is empty.
	ProductID  string
	Quantity   float64
	TotalPrice float64
}

func (in CreateInput) listingID() string {
	if in.ListingID != "" {
		return in.ListingID
	}
	return in.ProductID
}

type Service struct {
	orders      repository.OrderRepository
	listings    repository.ListingRepository
	distributor PointsDistributor
	publisher   events.Publisher
	now         func() time.Time
}

func NewService(
	orders repository.OrderRepository,
	listings repository.ListingRepository,
	distributor PointsDistributor,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.Nop
	}
	return &Service{
		orders:      orders,
		listings:    listings,
		distributor: distributor,
		publisher:   publisher,
		now:         time.Now,
	}
}

// CreateOrder places a PENDING order for the session user. Orders from
// business accounts also award points to individual users; that step and the
// event publication are best effort and never fail the order.
func (s *Service) CreateOrder(ctx context.Context, session utils.Session, in CreateInput) (*models.Order, error) {
	listingID, err := service.ParseID("listing", in.listingID())
	if err != nil {
		return nil, err
	}
	if in.Quantity < 0 || in.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: quantity and total price cannot be negative", repository.ErrInvalidInput)
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("listing %w", repository.ErrNotFound)
		}
		return nil, err
	}

	order := &models.Order{
		BuyerID:    session.UserID,
		ListingID:  listing.ID,
		Quantity:   in.Quantity,
		TotalPrice: in.TotalPrice,
		Status:     models.OrderPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("Order %s created by %s on listing %s owned by %s", order.ID, session.UserID, listing.ID, listing.UserID)

	if session.Role == models.RoleBusiness {
		s.awardPoints(ctx, order)
	}

	s.publish(ctx, events.OrderCreated, order, listing.UserID)

	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		log.Printf("Failed to reload order %s: %v", order.ID, err)
		return order, nil
	}
	return created, nil
}

func (s *Service) awardPoints(ctx context.Context, order *models.Order) {
	p := points.Calculate(order.Quantity)
	if p <= 0 {
		return
	}
	if err := s.distributor.Distribute(ctx, p); err != nil {
		log.Printf("Error handling points distribution for order %s: %v", order.ID, err)
	}
}

func (s *Service) publish(ctx context.Context, t events.Type, order *models.Order, ownerID string) {
	if err := s.publisher.Publish(ctx, events.NewOrderEvent(t, order, ownerID, s.now())); err != nil {
		log.Printf("Failed to publish %s for order %s: %v", t, order.ID, err)
	}
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	id, err := service.ParseID("order", orderID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("order %w", repository.ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

// CanUpdate reports whether the session may change the order's status: the
// collector owning the listing, or the buyer who placed it.
func CanUpdate(session utils.Session, order *models.Order, listingOwnerID string) bool {
	switch session.Role {
	case models.RoleCollector:
		return listingOwnerID != "" && session.UserID == listingOwnerID
	case models.RoleIndividual, models.RoleBusiness, models.RoleCommunity:
		return session.UserID == order.BuyerID
	}
	return false
}

func (s *Service) UpdateOrderStatus(ctx context.Context, session utils.Session, orderID string, rawStatus string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.listingOwner(ctx, order)
	if err != nil {
		return nil, err
	}
	if !CanUpdate(session, order, ownerID) {
		log.Printf("User %s (%s) is not authorized to update order %s", session.UserID, session.Role, order.ID)
		return nil, fmt.Errorf("%w to update this order", service.ErrForbidden)
	}

	status, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, status)
	if err != nil {
		return nil, err
	}
	log.Printf("Order %s status %s -> %s by %s", order.ID, order.Status, updated.Status, session.UserID)

	s.publish(ctx, events.OrderStatusChanged, updated, ownerID)
	return updated, nil
}

func (s *Service) listingOwner(ctx context.Context, order *models.Order) (string, error) {
	if order.Listing != nil {
		return order.Listing.UserID, nil
	}
	listing, err := s.listings.GetByID(ctx, order.ListingID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return listing.UserID, nil
}

// ListOrdersForUser returns, newest first, the orders on a collector's
// listings or the orders a buyer placed.
func (s *Service) ListOrdersForUser(ctx context.Context, session utils.Session) ([]models.Order, error) {
	switch session.Role {
	case models.RoleCollector:
		ids, err := s.listings.IDsByOwner(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		return s.orders.ListByListings(ctx, ids, 0)
	case models.RoleIndividual, models.RoleBusiness, models.RoleCommunity:
		return s.orders.ListByBuyer(ctx, session.UserID, 0)
	}
	return nil, fmt.Errorf("unsupported role %q", session.Role)
}
