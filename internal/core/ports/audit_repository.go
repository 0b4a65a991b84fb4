package ports

import (
	"context"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// AuditRepository persists catalog change events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.CatalogEvent) error
}
