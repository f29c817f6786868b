// Package collection schedules and cancels waste pickups.
package collection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"
)

type View string

const (
	ViewAll      View = "all"
	ViewUpcoming View = "upcoming"
	ViewPast     View = "past"
)

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "", ViewAll:
		return ViewAll, nil
	case ViewUpcoming, ViewPast:
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown view %q", repository.ErrInvalidInput, s)
}

type ScheduleInput struct {
	Type      string    `json:"type" validate:"required,max=50"`
	Date      time.Time `json:"date" validate:"required"`
	Address   string    `json:"address" validate:"required"`
	WasteType string    `json:"wasteType" validate:"max=50"`
	Quantity  float64   `json:"quantity" validate:"gte=0"`
	Notes     string    `json:"notes"`
}

type Service struct {
	collections repository.CollectionRepository
	now         func() time.Time
}

func NewService(collections repository.CollectionRepository) *Service {
	return &Service{collections: collections, now: time.Now}
}

// List returns the session user's pickups, latest date first.
func (s *Service) List(ctx context.Context, session utils.Session, view View) ([]models.Collection, error) {
	all, err := s.collections.ListByUser(ctx, session.UserID, 0)
	if err != nil {
		return nil, err
	}
	if view == ViewAll {
		return all, nil
	}

	now := s.now()
	picked := make([]models.Collection, 0, len(all))
	for _, c := range all {
		if c.Upcoming(now) == (view == ViewUpcoming) {
			picked = append(picked, c)
		}
	}
	return picked, nil
}

func (s *Service) Schedule(ctx context.Context, session utils.Session, in ScheduleInput) (*models.Collection, error) {
	if !in.Date.After(s.now()) {
		return nil, fmt.Errorf("%w: collection date must be in the future", repository.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", repository.ErrInvalidInput)
	}

	c := &models.Collection{
		UserID:    session.UserID,
		Type:      in.Type,
		Date:      in.Date,
		Status:    models.CollectionScheduled,
		Address:   in.Address,
		WasteType: in.WasteType,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	}
	if err := s.collections.Create(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("Collection %s scheduled by %s for %s", c.ID, session.UserID, c.Date.Format(time.RFC3339))
	return c, nil
}

// UpdateStatus applies a client status change. Clients may only cancel.
func (s *Service) UpdateStatus(ctx context.Context, session utils.Session, id string, rawStatus string) (*models.Collection, error) {
	status, err := models.ParseCollectionStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	if status != models.CollectionCancelled {
		return nil, fmt.Errorf("%w: collections can only be cancelled", repository.ErrInvalidInput)
	}
	return s.Cancel(ctx, session, id)
}

func (s *Service) Cancel(ctx context.Context, session utils.Session, id string) (*models.Collection, error) {
	collectionID, err := service.ParseID("collection", id)
	if err != nil {
		return nil, err
	}

	c, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("collection %w", repository.ErrNotFound)
		}
		return nil, err
	}
	if c.UserID != session.UserID {
		return nil, fmt.Errorf("%w to cancel this collection", service.ErrForbidden)
	}
	if c.Status != models.CollectionScheduled {
		return nil, fmt.Errorf("%w: collection is %s", service.ErrConflict, strings.ToLower(string(c.Status)))
	}

	updated, err := s.collections.UpdateStatus(ctx, c.ID, models.CollectionCancelled)
	if err != nil {
		return nil, err
	}
	log.Printf("Collection %s cancelled by %s", c.ID, session.UserID)
	return updated, nil
}
