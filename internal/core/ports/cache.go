package ports

import (
	"context"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// ListingCache caches full product listings, one entry per query shape.
// Invalidation is coarse: InvalidateAll discards every entry. Readers may
// observe a stale listing between a write and the next read after eviction,
// but never a partially applied write.
type ListingCache interface {
	Get(ctx context.Context, shape string) ([]domain.Product, bool, error)
	Set(ctx context.Context, shape string, products []domain.Product) error
	InvalidateAll(ctx context.Context) error
}
