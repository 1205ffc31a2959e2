package port

import (
	"context"

	"local-ads/internal/core/domain"
)

// AdServing selects a creative for a set of interest categories. It is the
// primary port into the selection logic: candidates come from the
// CreativeStore and are filtered through the frequency-cap rules before one
// is picked.
type AdServing interface {
	// ServeAd returns the chosen ad, or nil when no candidate survives
	// the category match and the exclusion rules. An error is returned
	// only on storage failures.
	ServeAd(ctx context.Context, categories []string) (*domain.CreativeAd, error)

	// RegisterLanding records that the user landed on the given
	// creative's target page, feeding the landed frequency cap.
	RegisterLanding(ctx context.Context, creativeInstanceID string) error
}
