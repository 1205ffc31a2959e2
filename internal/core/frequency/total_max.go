package frequency

import (
	"context"
	"fmt"
	"time"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// TotalMaxCap excludes a creative set that has been viewed ad.TotalMax or
// more times over its whole lifetime. A zero cap means the set is
// uncapped.
type TotalMaxCap struct {
	history     port.HistoryProvider
	now         func() time.Time
	lastMessage string
}

func NewTotalMaxCap(history port.HistoryProvider) *TotalMaxCap {
	return &TotalMaxCap{history: history, now: time.Now}
}

func (r *TotalMaxCap) ShouldExclude(ctx context.Context, ad domain.CreativeAd) bool {
	if ad.TotalMax == 0 {
		return false
	}

	history := r.history.GetHistoryFor(ctx, domain.AdEventViewed, ad.CreativeSetID)

	// Unbounded window: the constraint is the whole lifetime.
	if !respectsCap(history, 0, ad.TotalMax, r.now()) {
		r.lastMessage = fmt.Sprintf(
			"creativeSetId %s has exceeded the frequency capping for totalMax",
			ad.CreativeSetID)
		return true
	}
	return false
}

func (r *TotalMaxCap) LastMessage() string {
	return r.lastMessage
}
