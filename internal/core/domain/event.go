package domain

import "time"

// Ad event types recorded by the serving path.
const (
	AdEventLanded = "landed"
	AdEventViewed = "viewed"
)

// AdEvent is one occurrence of a user interacting with an ad. Events are
// append-only; the frequency-cap rules consume them as per-dimension
// timestamp histories.
type AdEvent struct {
	ID                 string
	CampaignID         string
	CreativeSetID      string
	CreativeInstanceID string
	Type               string
	CreatedAt          time.Time
}
