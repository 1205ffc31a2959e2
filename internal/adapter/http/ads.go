package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// handleListAds returns every currently-active creative ad along with the
// distinct categories present in the catalog. Internal errors produce
// HTTP 500.
func (h *Handler) handleListAds(w http.ResponseWriter, r *http.Request) {
	categories, ads, err := h.store.GetAll(r.Context())
	if err != nil {
		h.logger.Error("list ads error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, struct {
		Categories []string            `json:"categories"`
		Ads        []domain.CreativeAd `json:"ads"`
	}{Categories: categories, Ads: ads})
}

// handleGetAd returns a single creative ad by creative instance id.
// Unknown and ambiguous ids both produce HTTP 404; a uniquely-keyed
// lookup must never silently pick one of several rows.
func (h *Handler) handleGetAd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "creativeInstanceID")

	ad, err := h.store.GetForCreativeInstanceID(r.Context(), id)
	switch {
	case errors.Is(err, port.ErrEmptyCreativeInstanceID):
		http.Error(w, "missing creative instance id", http.StatusBadRequest)
		return
	case errors.Is(err, port.ErrCreativeNotFound), errors.Is(err, port.ErrAmbiguousCreative):
		http.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("get ad error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, ad)
}

// handleServeAd selects an eligible creative for the requested
// categories. The body is {"categories": [...]}. HTTP 204 means no
// candidate survived the category match and the frequency caps.
func (h *Handler) handleServeAd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	ad, err := h.serving.ServeAd(r.Context(), req.Categories)
	if err != nil {
		h.logger.Error("serve ad error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ad == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, ad)
}

// handleAdLanded records a landed event for the creative, feeding the
// landed frequency cap.
func (h *Handler) handleAdLanded(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "creativeInstanceID")

	err := h.serving.RegisterLanding(r.Context(), id)
	switch {
	case errors.Is(err, port.ErrEmptyCreativeInstanceID):
		http.Error(w, "missing creative instance id", http.StatusBadRequest)
		return
	case errors.Is(err, port.ErrCreativeNotFound), errors.Is(err, port.ErrAmbiguousCreative):
		http.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("register landing error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
