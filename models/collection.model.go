package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionStatus string

const (
	CollectionScheduled  CollectionStatus = "SCHEDULED"
	CollectionInProgress CollectionStatus = "INPROGRESS"
	CollectionCompleted  CollectionStatus = "COMPLETED"
	CollectionCancelled  CollectionStatus = "CANCELLED"
)

func ParseCollectionStatus(s string) (CollectionStatus, error) {
	switch st := CollectionStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case CollectionScheduled, CollectionInProgress, CollectionCompleted, CollectionCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown collection status %q", s)
}

// Collection is a scheduled pickup of waste from a user's address.
type Collection struct {
	ID        string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string           `gorm:"type:uuid;index;not null" json:"userId"`
	Type      string           `gorm:"size:50" json:"type"` // one-time, weekly, ...
	Date      time.Time        `gorm:"index;not null" json:"date"`
	Status    CollectionStatus `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`
	Address   string           `gorm:"type:text" json:"address"`
	WasteType string           `gorm:"size:50" json:"wasteType"`
	Quantity  float64          `json:"quantity"` // kg
	Notes     string           `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = CollectionScheduled
	}
	return nil
}

// Upcoming is true for live pickups that have not happened yet.
func (c Collection) Upcoming(now time.Time) bool {
	return c.Date.After(now) && c.Status != CollectionCancelled
}
