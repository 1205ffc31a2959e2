package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"local-ads/internal/core/domain"
)

// AdEventStore persists ad events and serves them back as per-dimension
// timestamp histories for the frequency-cap rules. The table is
// append-only: no update or delete statement exists in this file.
type AdEventStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewAdEventStore(db *sql.DB, logger *slog.Logger) *AdEventStore {
	return &AdEventStore{db: db, logger: logger}
}

// RecordAdEvent appends one event.
func (s *AdEventStore) RecordAdEvent(ctx context.Context, event domain.AdEvent) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO ad_events
        (id, campaign_id, creative_set_id, creative_instance_id, event_type, created_at)
        VALUES (?,?,?,?,?,?)`,
		event.ID, event.CampaignID, event.CreativeSetID,
		event.CreativeInstanceID, event.Type, event.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("record ad event: %w", err)
	}
	return nil
}

// GetHistoryFor returns the ordered event timestamps recorded for the
// given dimension key, matched against campaign, creative-set and creative
// instance ids. An unknown key yields an empty history. Storage failures
// are logged and also yield an empty history; a missing history can only
// make a frequency cap more permissive, never corrupt state.
func (s *AdEventStore) GetHistoryFor(ctx context.Context, eventType, dimensionKey string) []time.Time {
	rows, err := s.db.QueryContext(ctx, `SELECT created_at FROM ad_events
        WHERE event_type = ?
            AND (campaign_id = ? OR creative_set_id = ? OR creative_instance_id = ?)
        ORDER BY created_at`,
		eventType, dimensionKey, dimensionKey, dimensionKey)
	if err != nil {
		s.logger.Error("get ad event history", slog.Any("error", err))
		return nil
	}
	defer rows.Close()

	var history []time.Time
	for rows.Next() {
		var ts int64
		if err = rows.Scan(&ts); err != nil {
			s.logger.Error("scan ad event history", slog.Any("error", err))
			return nil
		}
		history = append(history, time.Unix(ts, 0).UTC())
	}
	if err = rows.Err(); err != nil {
		s.logger.Error("read ad event history", slog.Any("error", err))
		return nil
	}
	return history
}
