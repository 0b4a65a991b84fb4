package ports

import (
	"context"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// CreateProductInput carries a new product. Range validation (positive price,
// non-negative stock) happens at the HTTP boundary; the service only enforces
// identity-relative rules.
type CreateProductInput struct {
	Name             string
	Description      string
	Price            float64
	Stock            int
	SellerID         string
	ImageData        string
	ImageContentType string
}

// UpdateProductInput applies a tri-state partial update: a nil field is left
// unchanged, a non-nil field is applied. For ImageData specifically, a
// pointer to the empty string clears both image fields, while a non-empty
// value replaces the image after validation.
type UpdateProductInput struct {
	Name             *string
	Description      *string
	Price            *float64
	Stock            *int
	Active           *bool
	ImageData        *string
	ImageContentType *string
}

// CatalogService is the integrity engine in front of the product store.
// Every mutating operation evicts the listing cache after the write is
// durably applied and emits an audit event.
type CatalogService interface {
	Create(ctx context.Context, actor string, in CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListAvailable(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, actor, id string, in UpdateProductInput) (*domain.Product, error)
	// Delete reports whether it actually deactivated the product; repeating
	// the call on an inactive product is a no-op and returns false.
	Delete(ctx context.Context, actor, id string) (bool, error)
	ReduceStock(ctx context.Context, actor, id string, quantity int) (*domain.Product, error)
	AddStock(ctx context.Context, actor, id string, quantity int) (*domain.Product, error)
}
