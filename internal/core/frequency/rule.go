// Package frequency implements the rolling time-window frequency caps
// applied to creative ads before selection. Every rule shares one counting
// algorithm and differs only in its window, cap and the history dimension
// it keys on.
package frequency

import (
	"context"
	"time"

	"local-ads/internal/core/domain"
)

// ExclusionRule vetoes a creative ad from selection. Rules are stateless
// apart from the diagnostic message of the last exclusion; they read
// history, never mutate it, and are safe for concurrent evaluation when
// the history provider is.
type ExclusionRule interface {
	// ShouldExclude reports whether the ad must be withheld under this
	// rule.
	ShouldExclude(ctx context.Context, ad domain.CreativeAd) bool

	// LastMessage returns a diagnostic for the most recent exclusion.
	LastMessage() string
}

// respectsCap reports whether the number of events within
// [now-constraint, now] stays below cap. A non-positive constraint means
// an unbounded window: every event counts.
func respectsCap(history []time.Time, constraint time.Duration, cap int, now time.Time) bool {
	cutoff := now.Add(-constraint)

	count := 0
	for _, occurredAt := range history {
		if constraint > 0 && occurredAt.Before(cutoff) {
			continue
		}
		if occurredAt.After(now) {
			continue
		}
		count++
	}
	return count < cap
}
