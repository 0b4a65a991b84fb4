package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists catalog change
// events to the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single catalog change event.
func (s *auditService) Process(ctx context.Context, event domain.CatalogEvent) error {
	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}

	s.log.Debug().
		Str("product_id", event.ProductID).
		Str("action", string(event.Action)).
		Str("actor", event.Actor).
		Msg("audit event recorded")

	return nil
}
