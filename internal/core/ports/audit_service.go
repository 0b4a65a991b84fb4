package ports

import (
	"context"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// AuditService processes catalog change events off the request path.
type AuditService interface {
	Process(ctx context.Context, event domain.CatalogEvent) error
}
