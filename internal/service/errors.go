// Package service holds the failures shared by the domain services on top of
// the repository sentinels.
package service

import (
	"errors"
	"fmt"

	"ecorecycle_backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrForbidden = errors.New("not authorized")
	ErrConflict  = errors.New("conflicting state")
)

// ParseID rejects anything that is not a record identifier before it reaches
// the database.
func ParseID(kind, id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s ID format", repository.ErrInvalidInput, kind)
	}
	return parsed.String(), nil
}
