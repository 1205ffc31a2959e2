package port

import (
	"context"
	"time"

	"local-ads/internal/core/domain"
)

// HistoryProvider exposes append-only ad-event histories keyed by a
// targeting dimension (campaign id, creative set id or creative instance
// id). An unknown key yields an empty history. Implementations must be safe
// for concurrent reads.
type HistoryProvider interface {
	GetHistoryFor(ctx context.Context, eventType, dimensionKey string) []time.Time
}

// AdEventStore records ad events for the serving path. Events are never
// updated or deleted.
type AdEventStore interface {
	HistoryProvider

	RecordAdEvent(ctx context.Context, event domain.AdEvent) error
}
