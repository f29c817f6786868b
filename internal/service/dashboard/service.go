// Package dashboard assembles the role specific overview shown after login.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"

	"github.com/shopspring/decimal"
)

const (
	recentLimit   = 5
	activityLimit = 5
)

type ActivityType string

const (
	ActivityCollection ActivityType = "collection"
	ActivityOrder      ActivityType = "order"
)

type Activity struct {
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
}

// Dashboard is the payload of GET /api/dashboard. Role specific fields are
// omitted for roles that do not have them.
type Dashboard struct {
	Collections      []models.Collection `json:"collections"`
	Products         []models.Product    `json:"products"`
	Orders           []models.Order      `json:"orders,omitempty"`
	Points           int                 `json:"points"`
	TotalCollections int                 `json:"totalCollections"`
	TotalProducts    int                 `json:"totalProducts"`
	TotalOrders      int64               `json:"totalOrders"`
	TotalSpent       *float64            `json:"totalSpent,omitempty"`
	TotalRevenue     *float64            `json:"totalRevenue,omitempty"`
	RecentActivity   []Activity          `json:"recentActivity"`
}

type Service struct {
	users       repository.UserRepository
	collections repository.CollectionRepository
	orders      repository.OrderRepository
	listings    repository.ListingRepository
	products    repository.ProductRepository
}

func NewService(
	users repository.UserRepository,
	collections repository.CollectionRepository,
	orders repository.OrderRepository,
	listings repository.ListingRepository,
	products repository.ProductRepository,
) *Service {
	return &Service{
		users:       users,
		collections: collections,
		orders:      orders,
		listings:    listings,
		products:    products,
	}
}

func (s *Service) Build(ctx context.Context, session utils.Session) (*Dashboard, error) {
	collections, err := s.collections.ListByUser(ctx, session.UserID, recentLimit)
	if err != nil {
		return nil, err
	}
	recentOrders, err := s.orders.ListByBuyer(ctx, session.UserID, recentLimit)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Collections:      collections,
		Products:         []models.Product{},
		TotalCollections: len(collections),
	}

	switch session.Role {
	case models.RoleIndividual, models.RoleCommunity:
		err = s.individual(ctx, session, d)
	case models.RoleBusiness:
		err = s.business(ctx, session, d, recentOrders)
	case models.RoleCollector:
		err = s.collector(ctx, session, d)
	default:
		err = fmt.Errorf("no dashboard for role %q", session.Role)
	}
	if err != nil {
		return nil, err
	}

	d.RecentActivity = recentActivity(collections, recentOrders)
	return d, nil
}

func (s *Service) individual(ctx context.Context, session utils.Session, d *Dashboard) error {
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", session.UserID, err)
	}
	count, err := s.orders.CountByBuyer(ctx, session.UserID)
	if err != nil {
		return err
	}
	d.Points = user.Points
	d.TotalOrders = count
	return nil
}

func (s *Service) business(ctx context.Context, session utils.Session, d *Dashboard, recent []models.Order) error {
	totals, err := s.orders.TotalPricesByBuyer(ctx, session.UserID)
	if err != nil {
		return err
	}
	spent := sum(totals)
	d.Orders = recent
	d.TotalOrders = int64(len(totals))
	d.TotalSpent = &spent
	return nil
}

func (s *Service) collector(ctx context.Context, session utils.Session, d *Dashboard) error {
	products, err := s.products.ListBySeller(ctx, session.UserID)
	if err != nil {
		return err
	}
	listingIDs, err := s.listings.IDsByOwner(ctx, session.UserID)
	if err != nil {
		return err
	}
	sold, err := s.orders.ListByListings(ctx, listingIDs, 0)
	if err != nil {
		return err
	}

	totals := make([]float64, len(sold))
	for i, o := range sold {
		totals[i] = o.TotalPrice
	}
	revenue := sum(totals)

	d.Products = products
	d.TotalProducts = len(products)
	d.Orders = sold
	d.TotalOrders = int64(len(sold))
	d.TotalRevenue = &revenue
	return nil
}

func sum(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// recentActivity merges collection and order events newest first and keeps
// at most activityLimit of them.
func recentActivity(collections []models.Collection, orders []models.Order) []Activity {
	feed := make([]Activity, 0, len(collections)+len(orders))
	for _, c := range collections {
		status := string(c.Status)
		if status == "" {
			status = string(models.CollectionScheduled)
		}
		wasteType := c.WasteType
		if wasteType == "" {
			wasteType = "Mixed Waste"
		}
		feed = append(feed, Activity{
			Type:        ActivityCollection,
			Title:       "Collection " + strings.ToLower(status),
			Description: fmt.Sprintf("%s - %skg", wasteType, strconv.FormatFloat(c.Quantity, 'f', -1, 64)),
			Date:        c.Date,
		})
	}
	for _, o := range orders {
		status := string(o.Status)
		if status == "" {
			status = "placed"
		}
		feed = append(feed, Activity{
			Type:        ActivityOrder,
			Title:       "Order " + strings.ToLower(status),
			Description: "Order #" + o.ID,
			Date:        o.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	if len(feed) > activityLimit {
		feed = feed[:activityLimit]
	}
	return feed
}
