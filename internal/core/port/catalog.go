package port

import (
	"context"
	"time"
)

// DownloadResponse is the raw result of fetching a catalog URL. Status is
// the transport status code; Body is the unparsed payload.
type DownloadResponse struct {
	Status int
	Body   []byte
}

// Downloader fetches the remote catalog document. Implementations return an
// error only for transport-level failures; non-2xx statuses come back in
// the response and are classified by the caller.
type Downloader interface {
	Download(ctx context.Context, url string) (DownloadResponse, error)
}

// CatalogMetaStore persists catalog bookkeeping across restarts. Currently
// that is the timestamp of the last successfully applied catalog.
type CatalogMetaStore interface {
	LastUpdated(ctx context.Context) (time.Time, error)
	SetLastUpdated(ctx context.Context, t time.Time) error
}

// CatalogSyncer is the inbound surface of the catalog synchronizer, used by
// the HTTP layer and telemetry.
type CatalogSyncer interface {
	MaybeDownload()
	LastUpdated() time.Time
}
