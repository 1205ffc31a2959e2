package httpadapter

import (
	"net/http"
	"time"
)

// handleCatalogStatus reports when the catalog was last successfully
// applied. A null last_updated means no catalog has ever been applied.
func (h *Handler) handleCatalogStatus(w http.ResponseWriter, _ *http.Request) {
	var lastUpdated *time.Time
	if t := h.syncer.LastUpdated(); !t.IsZero() {
		lastUpdated = &t
	}

	h.writeJSON(w, struct {
		LastUpdated *time.Time `json:"last_updated"`
	}{LastUpdated: lastUpdated})
}

// handleCatalogRefresh asks the synchronizer for a download. The request
// is accepted regardless: a sync already in flight makes this a no-op.
func (h *Handler) handleCatalogRefresh(w http.ResponseWriter, _ *http.Request) {
	h.syncer.MaybeDownload()
	w.WriteHeader(http.StatusAccepted)
}
