package ports

import (
	"context"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// ProductRepository defines the persistence contract for catalog products.
// Concurrent writes to the same record are serialized by the store; this
// layer does not implement its own locking.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindActive(ctx context.Context) ([]domain.Product, error)
	FindAvailable(ctx context.Context) ([]domain.Product, error)
	FindBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	// ExistsActiveByName reports whether the seller already has an active
	// product with exactly this name, excluding the product with excludeID
	// (empty excludeID excludes nothing).
	ExistsActiveByName(ctx context.Context, sellerID, name, excludeID string) (bool, error)
	Update(ctx context.Context, product *domain.Product) error
}
