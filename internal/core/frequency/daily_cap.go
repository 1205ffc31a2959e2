package frequency

import (
	"context"
	"fmt"
	"time"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// DailyCap excludes a campaign that was viewed ad.DailyCap or more times
// within the last day, across all of its creative sets. A zero cap means
// the campaign is uncapped.
type DailyCap struct {
	history     port.HistoryProvider
	now         func() time.Time
	lastMessage string
}

func NewDailyCap(history port.HistoryProvider) *DailyCap {
	return &DailyCap{history: history, now: time.Now}
}

func (r *DailyCap) ShouldExclude(ctx context.Context, ad domain.CreativeAd) bool {
	if ad.DailyCap == 0 {
		return false
	}

	history := r.history.GetHistoryFor(ctx, domain.AdEventViewed, ad.CampaignID)

	if !respectsCap(history, 24*time.Hour, ad.DailyCap, r.now()) {
		r.lastMessage = fmt.Sprintf(
			"campaignId %s has exceeded the frequency capping for dailyCap",
			ad.CampaignID)
		return true
	}
	return false
}

func (r *DailyCap) LastMessage() string {
	return r.lastMessage
}
