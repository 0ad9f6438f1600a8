package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/usmanhardware/backend/internal/domain/catalog"
)

const defaultProductKeyPrefix = "product:"

// RedisProductCache is a read-through cache for product records. Stock
// mutations invalidate the cached entry so readers never see a stale
// stock level for longer than one miss.
type RedisProductCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// NewRedisProductCache creates a product cache backed by an existing
// Redis client. A zero ttl disables expiry.
func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: defaultProductKeyPrefix,
	}
}

// Get returns the cached product, or nil on a cache miss.
func (c *RedisProductCache) Get(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	data, err := c.client.Get(ctx, c.key(productID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read product cache: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}

	return &product, nil
}

// Set stores the product under its ID with the configured TTL.
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product for cache: %w", err)
	}

	if err := c.client.Set(ctx, c.key(product.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write product cache: %w", err)
	}

	return nil
}

// InvalidateProduct drops the cached entry after a stock mutation.
func (c *RedisProductCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(productID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

func (c *RedisProductCache) key(productID uuid.UUID) string {
	return c.keyPrefix + productID.String()
}
