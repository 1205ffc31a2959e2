package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"local-ads/internal/core/port"
)

// Handler is the inbound HTTP adapter. It exposes the catalog read
// surface, the serving endpoint and the catalog sync controls on a
// chi.Router.
type Handler struct {
	store   port.CreativeStore
	serving port.AdServing
	syncer  port.CatalogSyncer
	logger  *slog.Logger
	router  chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(store port.CreativeStore, serving port.AdServing,
	syncer port.CatalogSyncer, logger *slog.Logger) *Handler {

	h := &Handler{store: store, serving: serving, syncer: syncer, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ads", h.handleListAds)
		r.Get("/ads/{creativeInstanceID}", h.handleGetAd)
		r.Post("/ads/serve", h.handleServeAd)
		r.Post("/ads/{creativeInstanceID}/landed", h.handleAdLanded)
		r.Get("/catalog", h.handleCatalogStatus)
		r.Post("/catalog/refresh", h.handleCatalogRefresh)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
