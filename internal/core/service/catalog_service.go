package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

// Listing cache query shapes.
const (
	cacheShapeActive    = "active"
	cacheShapeAvailable = "available"
)

// AuditSink receives catalog change events for asynchronous processing.
type AuditSink interface {
	Enqueue(event domain.CatalogEvent)
}

// CatalogService enforces the catalog integrity rules: seller capability,
// per-seller active-name uniqueness, tri-state partial updates, soft delete,
// and image payload validation. Every durable write is followed by a full
// listing-cache eviction and an audit event.
type CatalogService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	cache    ports.ListingCache
	audit    AuditSink
	logger   zerolog.Logger
}

func NewCatalogService(
	products ports.ProductRepository,
	users ports.UserRepository,
	cache ports.ListingCache,
	audit AuditSink,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		users:    users,
		cache:    cache,
		audit:    audit,
		logger:   logger,
	}
}

// Create persists a new active product for a capable seller. Range checks on
// price and stock belong to the HTTP boundary; this method enforces the
// identity-relative rules only.
func (s *CatalogService) Create(ctx context.Context, actor string, in ports.CreateProductInput) (*domain.Product, error) {
	seller, err := s.users.FindByID(ctx, in.SellerID)
	if err != nil {
		return nil, err
	}
	if !seller.CanSellProducts() {
		return nil, fmt.Errorf("%w: user %s cannot sell products", domain.ErrValidation, seller.Username)
	}

	taken, err := s.products.ExistsActiveByName(ctx, in.SellerID, in.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: seller already has an active product named %q", domain.ErrValidation, in.Name)
	}

	if err := domain.ValidateImageData(in.ImageData); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:             in.Name,
		Description:      in.Description,
		Price:            in.Price,
		Stock:            in.Stock,
		Active:           true,
		ImageData:        in.ImageData,
		ImageContentType: in.ImageContentType,
		SellerID:         in.SellerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("seller_id", in.SellerID).Msg("failed to create product")
		return nil, err
	}

	s.afterWrite(ctx, created.ID, domain.AuditCreated, actor)
	s.logger.Info().Str("product_id", created.ID).Str("seller_id", in.SellerID).Msg("product created")
	return created, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.cachedListing(ctx, cacheShapeActive, s.products.FindActive)
}

func (s *CatalogService) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	return s.cachedListing(ctx, cacheShapeAvailable, s.products.FindAvailable)
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return s.products.FindBySeller(ctx, sellerID)
}

// Update applies a tri-state partial update. A name change, and an explicit
// reactivation, both re-run the per-seller active-name uniqueness check
// excluding the product itself.
func (s *CatalogService) Update(ctx context.Context, actor, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newName := product.Name
	if in.Name != nil {
		newName = *in.Name
	}
	reactivating := in.Active != nil && *in.Active && !product.Active
	if (in.Name != nil && newName != product.Name) || reactivating {
		taken, err := s.products.ExistsActiveByName(ctx, product.SellerID, newName, product.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: seller already has an active product named %q", domain.ErrValidation, newName)
		}
	}

	if in.ImageData != nil {
		if *in.ImageData == "" {
			// Explicit empty clears the image entirely.
			product.ImageData = ""
			product.ImageContentType = ""
		} else {
			if err := domain.ValidateImageData(*in.ImageData); err != nil {
				return nil, err
			}
			product.ImageData = *in.ImageData
			if in.ImageContentType != nil {
				product.ImageContentType = *in.ImageContentType
			}
		}
	} else if in.ImageContentType != nil && product.HasImage() {
		product.ImageContentType = *in.ImageContentType
	}

	product.Name = newName
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.afterWrite(ctx, id, domain.AuditUpdated, actor)
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

// Delete soft-deletes: the record stays in the store with active=false.
// Deleting an already inactive product is a no-op, not an error; the return
// reports whether this call performed the deactivation.
func (s *CatalogService) Delete(ctx context.Context, actor, id string) (bool, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	if !product.Active {
		return false, nil
	}

	product.Active = false
	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return false, err
	}

	s.afterWrite(ctx, id, domain.AuditDeleted, actor)
	s.logger.Info().Str("product_id", id).Msg("product soft-deleted")
	return true, nil
}

func (s *CatalogService) ReduceStock(ctx context.Context, actor, id string, quantity int) (*domain.Product, error) {
	return s.adjustStock(ctx, actor, id, quantity, domain.AuditStockReduced, (*domain.Product).ReduceStock)
}

func (s *CatalogService) AddStock(ctx context.Context, actor, id string, quantity int) (*domain.Product, error) {
	return s.adjustStock(ctx, actor, id, quantity, domain.AuditStockAdded, (*domain.Product).AddStock)
}

func (s *CatalogService) adjustStock(
	ctx context.Context,
	actor, id string,
	quantity int,
	action domain.AuditAction,
	apply func(*domain.Product, int) error,
) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(product, quantity); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to adjust stock")
		return nil, err
	}

	s.afterWrite(ctx, id, action, actor)
	s.logger.Info().Str("product_id", id).Int("stock", product.Stock).Msg("stock adjusted")
	return product, nil
}

// cachedListing serves a full-listing read through the cache. Cache failures
// fall through to the store and are never surfaced to the caller.
func (s *CatalogService) cachedListing(
	ctx context.Context,
	shape string,
	load func(context.Context) ([]domain.Product, error),
) ([]domain.Product, error) {
	if cached, ok, err := s.cache.Get(ctx, shape); err != nil {
		s.logger.Warn().Err(err).Str("shape", shape).Msg("listing cache read failed")
	} else if ok {
		return cached, nil
	}

	products, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, shape, products); err != nil {
		s.logger.Warn().Err(err).Str("shape", shape).Msg("listing cache write failed")
	}
	return products, nil
}

// afterWrite runs once the store has durably applied a mutation: the whole
// listing cache is evicted and the change is queued for the audit trail.
func (s *CatalogService) afterWrite(ctx context.Context, productID string, action domain.AuditAction, actor string) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn().Err(err).Str("product_id", productID).Msg("listing cache eviction failed")
	}
	s.audit.Enqueue(domain.CatalogEvent{
		ProductID: productID,
		Action:    action,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}
