package frequency

import (
	"context"
	"fmt"
	"time"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

const (
	landedCap            = 1
	landedTimeConstraint = 48 * time.Hour
)

// LandedCap excludes a campaign whose ad was landed on within the last 48
// hours. A campaign's ad may be landed on at most once per window.
type LandedCap struct {
	history     port.HistoryProvider
	now         func() time.Time
	lastMessage string
}

func NewLandedCap(history port.HistoryProvider) *LandedCap {
	return &LandedCap{history: history, now: time.Now}
}

func (r *LandedCap) ShouldExclude(ctx context.Context, ad domain.CreativeAd) bool {
	history := r.history.GetHistoryFor(ctx, domain.AdEventLanded, ad.CampaignID)

	if !respectsCap(history, landedTimeConstraint, landedCap, r.now()) {
		r.lastMessage = fmt.Sprintf(
			"campaignId %s has exceeded the frequency capping for landed",
			ad.CampaignID)
		return true
	}
	return false
}

func (r *LandedCap) LastMessage() string {
	return r.lastMessage
}
