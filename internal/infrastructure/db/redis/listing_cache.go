package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mercadolocal/catalog-system/internal/api/metrics"
	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

const (
	listingVersionKey = "catalog:listings:ver"
	listingTTL        = 5 * time.Minute
)

// ListingCache caches full product listings in Redis, one entry per query
// shape. Eviction is coarse and all-at-once: entries are keyed under a
// namespace version, and InvalidateAll bumps the version, orphaning every
// existing entry in a single atomic operation. Orphaned entries age out via
// TTL.
type ListingCache struct {
	client *redis.Client
}

// NewListingCache creates a ListingCache wrapping the given Redis client.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// Get returns the cached listing for the query shape, if present under the
// current namespace version.
func (c *ListingCache) Get(ctx context.Context, shape string) ([]domain.Product, bool, error) {
	key, err := c.key(ctx, shape)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		metrics.ListingCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false, fmt.Errorf("listing cache decode: %w", err)
	}

	metrics.ListingCacheTotal.WithLabelValues("hit").Inc()
	return products, true, nil
}

// Set stores a listing under the current namespace version.
func (c *ListingCache) Set(ctx context.Context, shape string, products []domain.Product) error {
	key, err := c.key(ctx, shape)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("listing cache encode: %w", err)
	}
	return c.client.Set(ctx, key, raw, listingTTL).Err()
}

// InvalidateAll discards every cached listing by bumping the namespace
// version.
func (c *ListingCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, listingVersionKey).Err(); err != nil {
		return fmt.Errorf("listing cache invalidate: %w", err)
	}
	return nil
}

// key builds the versioned entry key for a query shape.
func (c *ListingCache) key(ctx context.Context, shape string) (string, error) {
	ver, err := c.client.Get(ctx, listingVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("listing cache version: %w", err)
	}
	return fmt.Sprintf("catalog:listings:v%d:%s", ver, shape), nil
}
