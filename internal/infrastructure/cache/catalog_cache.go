package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

const keyCatalog = "storegw:catalog"

// ErrCacheMiss is returned when no catalog snapshot is cached.
var ErrCacheMiss = errors.New("catalog not cached")

// CatalogCache holds the shared product catalog snapshot so per-user store
// sessions and the background refresher do not hammer the gateway.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache creates a catalog cache with the given snapshot TTL.
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CatalogCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached catalog or ErrCacheMiss.
func (c *CatalogCache) Get(ctx context.Context) ([]entity.Product, error) {
	data, err := c.client.Get(ctx, keyCatalog).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return products, nil
}

// Set stores a catalog snapshot.
func (c *CatalogCache) Set(ctx context.Context, products []entity.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := c.client.Set(ctx, keyCatalog, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set catalog: %w", err)
	}

	c.logger.Debug("cached product catalog", zap.Int("products", len(products)))
	return nil
}
