package interfaces

import (
	"context"
	"time"

	"github.com/foliohq/folio/internal/models"
)

// StorageManager coordinates storage backends
type StorageManager interface {
	SecurityStore() SecurityStore
	Close() error
}

// SecurityStore persists security records keyed by symbol. The core
// treats this as a plain key-value store; writes of a single record are
// atomic, no transactions beyond that are required.
type SecurityStore interface {
	// GetSecurity retrieves the record for a symbol, or an error if absent.
	GetSecurity(ctx context.Context, symbol string) (*models.SecurityRecord, error)

	// SaveSecurity upserts a record in a single atomic write.
	SaveSecurity(ctx context.Context, record *models.SecurityRecord) error

	// GetSecurityBatch retrieves records for multiple symbols.
	GetSecurityBatch(ctx context.Context, symbols []string) ([]*models.SecurityRecord, error)

	// FindStaleBefore returns active records last updated before cutoff.
	FindStaleBefore(ctx context.Context, cutoff time.Time) ([]*models.SecurityRecord, error)

	// ListActive returns all active records.
	ListActive(ctx context.Context) ([]*models.SecurityRecord, error)

	// Deactivate soft-deletes a record (IsActive = false).
	Deactivate(ctx context.Context, symbol string) error
}
