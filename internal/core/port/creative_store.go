package port

import (
	"context"
	"errors"

	"local-ads/internal/core/domain"
)

var (
	// ErrEmptyCreativeInstanceID is returned by lookups given an empty id.
	ErrEmptyCreativeInstanceID = errors.New("empty creative instance id")

	// ErrCreativeNotFound is returned when no creative matches a lookup.
	ErrCreativeNotFound = errors.New("creative ad not found")

	// ErrAmbiguousCreative is returned when a unique lookup matches more
	// than one creative. The unique key must never silently pick one row.
	ErrAmbiguousCreative = errors.New("multiple creative ads for one id")

	// ErrInvalidBatchSize is returned when a store is configured with a
	// non-positive write batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)

// CreativeStore is the persistence layer for the creative ad catalog. It is
// an outbound port; implementations must keep the creative table and its
// dependent campaign, category, eligibility, geo-target and daypart records
// consistent within each write transaction.
type CreativeStore interface {
	// Save upserts the given ads in batches, each batch one atomic
	// multi-table transaction. Saving an empty list succeeds without
	// touching storage.
	Save(ctx context.Context, ads []domain.CreativeAd) error

	// Delete clears the catalog, removing rows from every table.
	Delete(ctx context.Context) error

	// GetForCreativeInstanceID returns the single ad with the given id.
	// Empty ids, missing records and ambiguous matches are errors; the
	// returned ad is the zero value in every error case.
	GetForCreativeInstanceID(ctx context.Context, id string) (domain.CreativeAd, error)

	// GetForCategories returns the currently-active ads matching any of
	// the given categories, case-insensitively, together with the
	// lower-cased categories used for matching. An empty category set
	// matches nothing.
	GetForCategories(ctx context.Context, categories []string) ([]string, []domain.CreativeAd, error)

	// GetAll returns every currently-active ad plus the deduplicated,
	// sorted categories present in the result.
	GetAll(ctx context.Context) ([]string, []domain.CreativeAd, error)
}
