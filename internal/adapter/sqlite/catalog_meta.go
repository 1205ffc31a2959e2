package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CatalogMetaStore persists catalog bookkeeping in the single-row
// catalog_meta table.
type CatalogMetaStore struct {
	db *sql.DB
}

func NewCatalogMetaStore(db *sql.DB) *CatalogMetaStore {
	return &CatalogMetaStore{db: db}
}

// LastUpdated returns the timestamp of the last successfully applied
// catalog, or the zero time when no catalog has ever been applied.
func (s *CatalogMetaStore) LastUpdated(ctx context.Context) (time.Time, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_updated FROM catalog_meta WHERE id = 1`).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get catalog last updated: %w", err)
	}
	if ts == 0 {
		return time.Time{}, nil
	}
	return time.Unix(ts, 0).UTC(), nil
}

// SetLastUpdated advances the last applied timestamp.
func (s *CatalogMetaStore) SetLastUpdated(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO catalog_meta (id, last_updated)
        VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET last_updated = excluded.last_updated`,
		t.Unix())
	if err != nil {
		return fmt.Errorf("set catalog last updated: %w", err)
	}
	return nil
}
