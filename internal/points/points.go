// Package points turns business purchase volume into reward points for
// individual recyclers.
package points

import (
	"context"
	"log"
	"math"

	"ecorecycle_backend/models"
)

// UnitsPerPoint is how much ordered quantity earns a single point.
const UnitsPerPoint = 5

// Calculate maps an order quantity to whole reward points. It never returns a
// negative value and never decreases as quantity grows.
func Calculate(quantity float64) int {
	if math.IsNaN(quantity) || quantity <= 0 {
		return 0
	}
	p := math.Floor(quantity / UnitsPerPoint)
	if p > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(p)
}

type roleCrediter interface {
	AddPointsToRole(ctx context.Context, role models.Role, points int) (int64, error)
}

// Distributor credits awarded points to the individual-user pool. Every
// individual account receives the full amount.
type Distributor struct {
	users roleCrediter
}

func NewDistributor(users roleCrediter) *Distributor {
	return &Distributor{users: users}
}

func (d *Distributor) Distribute(ctx context.Context, points int) error {
	if points <= 0 {
		return nil
	}
	n, err := d.users.AddPointsToRole(ctx, models.RoleIndividual, points)
	if err != nil {
		return err
	}
	log.Printf("Distributed %d points to %d individual users", points, n)
	return nil
}
