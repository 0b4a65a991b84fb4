package domain

import "time"

// AuditAction classifies a catalog mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreated      AuditAction = "created"
	AuditUpdated      AuditAction = "updated"
	AuditDeleted      AuditAction = "deleted"
	AuditStockReduced AuditAction = "stock_reduced"
	AuditStockAdded   AuditAction = "stock_added"
)

// CatalogEvent records a single catalog mutation for the audit trail.
type CatalogEvent struct {
	ProductID string      `json:"product_id"`
	Action    AuditAction `json:"action"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
}
