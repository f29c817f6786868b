package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/models"

	"github.com/redis/go-redis/v9"
)

const (
	notFoundMarker = "notfound"
	categoriesKey  = "categories:all"
)

// CachedProductRepository is a read-through cache in front of the product
// catalog. Single products and the category list are cached; searches always
// hit the database because their key space is unbounded.
type CachedProductRepository struct {
	realRepo    repository.ProductRepository
	redis       *redis.Client
	ttl         time.Duration
	notFoundTTL time.Duration
}

var _ repository.ProductRepository = (*CachedProductRepository)(nil)

func NewCachedProductRepository(realRepo repository.ProductRepository, redis *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{
		realRepo:    realRepo,
		redis:       redis,
		ttl:         5 * time.Minute,
		notFoundTTL: 1 * time.Minute,
	}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *CachedProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}
		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			log.Printf("Failed to unmarshal cached product (continuing with DB): %v", err)
			break
		}
		return &product, nil
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("Redis error (continuing with DB): %v", err)
	}

	product, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, c.notFoundTTL).Err(); setErr != nil {
				log.Printf("Failed to cache notfound: %v", setErr)
			}
		}
		return nil, err
	}

	c.store(ctx, key, product)
	return product, nil
}

func (c *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := c.realRepo.Create(ctx, product); err != nil {
		return err
	}
	// Drop a negative entry left by an earlier lookup of this id.
	if err := c.redis.Del(ctx, productKey(product.ID)).Err(); err != nil {
		log.Printf("Failed to delete product cache: %v", err)
	}
	return nil
}

func (c *CachedProductRepository) Search(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	return c.realRepo.Search(ctx, filter)
}

func (c *CachedProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	return c.realRepo.ListBySeller(ctx, sellerID)
}

func (c *CachedProductRepository) Categories(ctx context.Context) ([]models.Category, error) {
	data, err := c.redis.Get(ctx, categoriesKey).Bytes()
	if err == nil {
		var categories []models.Category
		uerr := json.Unmarshal(data, &categories)
		if uerr == nil {
			return categories, nil
		}
		log.Printf("Failed to unmarshal cached categories (continuing with DB): %v", uerr)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Redis error: %v (continuing with DB)", err)
	}

	categories, err := c.realRepo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, categoriesKey, categories)
	return categories, nil
}

func (c *CachedProductRepository) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}
