package frequency

import (
	"context"
	"fmt"
	"time"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// PerDayCap excludes a creative set that was viewed ad.PerDay or more
// times within the last day. A zero cap means the set is uncapped.
type PerDayCap struct {
	history     port.HistoryProvider
	now         func() time.Time
	lastMessage string
}

func NewPerDayCap(history port.HistoryProvider) *PerDayCap {
	return &PerDayCap{history: history, now: time.Now}
}

func (r *PerDayCap) ShouldExclude(ctx context.Context, ad domain.CreativeAd) bool {
	if ad.PerDay == 0 {
		return false
	}

	history := r.history.GetHistoryFor(ctx, domain.AdEventViewed, ad.CreativeSetID)

	if !respectsCap(history, 24*time.Hour, ad.PerDay, r.now()) {
		r.lastMessage = fmt.Sprintf(
			"creativeSetId %s has exceeded the frequency capping for perDay",
			ad.CreativeSetID)
		return true
	}
	return false
}

func (r *PerDayCap) LastMessage() string {
	return r.lastMessage
}
