package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/interfaces"
	"github.com/foliohq/folio/internal/models"
)

// SecurityStore persists security records in the "security" table,
// keyed by symbol.
type SecurityStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewSecurityStore(db *surrealdb.DB, logger *common.Logger) *SecurityStore {
	return &SecurityStore{
		db:     db,
		logger: logger,
	}
}

func (s *SecurityStore) GetSecurity(ctx context.Context, symbol string) (*models.SecurityRecord, error) {
	record, err := surrealdb.Select[models.SecurityRecord](ctx, s.db, surrealmodels.NewRecordID("security", symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to select security: %w", err)
	}
	if record == nil || record.Symbol == "" {
		return nil, fmt.Errorf("security not found: %s", symbol)
	}
	return record, nil
}

func (s *SecurityStore) SaveSecurity(ctx context.Context, record *models.SecurityRecord) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{"rid": surrealmodels.NewRecordID("security", record.Symbol), "data": record}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.SecurityRecord](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save security after retries: %w", lastErr)
}

func (s *SecurityStore) GetSecurityBatch(ctx context.Context, symbols []string) ([]*models.SecurityRecord, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	sql := "SELECT * FROM security WHERE symbol IN $symbols"
	vars := map[string]any{"symbols": symbols}

	results, err := surrealdb.Query[[]models.SecurityRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get security batch: %w", err)
	}

	var mapped []*models.SecurityRecord
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
	}
	return mapped, nil
}

func (s *SecurityStore) FindStaleBefore(ctx context.Context, cutoff time.Time) ([]*models.SecurityRecord, error) {
	sql := "SELECT * FROM security WHERE is_active = true AND last_updated < $cutoff"
	vars := map[string]any{"cutoff": cutoff}

	results, err := surrealdb.Query[[]models.SecurityRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale securities: %w", err)
	}

	var stale []*models.SecurityRecord
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			stale = append(stale, &(*results)[0].Result[i])
		}
	}
	return stale, nil
}

func (s *SecurityStore) ListActive(ctx context.Context) ([]*models.SecurityRecord, error) {
	sql := "SELECT * FROM security WHERE is_active = true"

	results, err := surrealdb.Query[[]models.SecurityRecord](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities: %w", err)
	}

	var active []*models.SecurityRecord
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			active = append(active, &(*results)[0].Result[i])
		}
	}
	return active, nil
}

func (s *SecurityStore) Deactivate(ctx context.Context, symbol string) error {
	sql := "UPDATE $rid SET is_active = false"
	vars := map[string]any{"rid": surrealmodels.NewRecordID("security", symbol)}

	if _, err := surrealdb.Query[[]models.SecurityRecord](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to deactivate security: %w", err)
	}
	return nil
}

// Ensure SecurityStore implements the interface
var _ interfaces.SecurityStore = (*SecurityStore)(nil)
