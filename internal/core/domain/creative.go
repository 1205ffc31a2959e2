package domain

import "time"

// CreativeAd is a single advertisement variant together with the campaign
// attributes it is served under. It is the flattened row produced by joining
// the creative table with its campaign, category, eligibility, geo-target and
// daypart records.
type CreativeAd struct {
	CreativeInstanceID string
	CreativeSetID      string
	CampaignID         string
	AdvertiserID       string
	CompanyName        string
	Alt                string
	TargetURL          string
	Category           string

	// StartAt and EndAt bound the campaign's active window, inclusive on
	// both ends. Eligibility is evaluated at query time.
	StartAt time.Time
	EndAt   time.Time

	// PTR is the pass-through rate in [0,1].
	PTR        float64
	Conversion bool

	// PerDay and TotalMax cap the creative set; DailyCap caps the campaign.
	// Zero means uncapped.
	PerDay   int
	TotalMax int
	DailyCap int

	// Priority ranks candidates; lower values win.
	Priority int

	GeoTargets []string
	Dayparts   []Daypart
}

// Daypart is a weekly serving window. Dow is a string of weekday digits
// ("0" = Sunday .. "6" = Saturday); minutes are measured from midnight.
type Daypart struct {
	Dow         string
	StartMinute int
	EndMinute   int
}

// IsActiveAt reports whether now falls within the campaign window.
func (a CreativeAd) IsActiveAt(now time.Time) bool {
	return !now.Before(a.StartAt) && !now.After(a.EndAt)
}
