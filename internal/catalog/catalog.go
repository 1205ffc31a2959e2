// Package catalog models the remote catalog document and flattens it into
// creative ads ready for the store.
package catalog

import (
	"time"
)

// SupportedVersion is the catalog schema version this client understands.
// Any other version is rejected at parse time.
const SupportedVersion = 4

// Document is the full catalog as distributed by the remote source.
type Document struct {
	Version   int        `json:"version"`
	Ping      int64      `json:"ping"`
	Campaigns []Campaign `json:"campaigns"`
}

// Campaign groups creative sets under shared scheduling, priority and
// targeting attributes.
type Campaign struct {
	CampaignID   string        `json:"campaignId"`
	AdvertiserID string        `json:"advertiserId"`
	StartAt      time.Time     `json:"startAt"`
	EndAt        time.Time     `json:"endAt"`
	DailyCap     int           `json:"dailyCap"`
	Priority     int           `json:"priority"`
	PTR          float64       `json:"ptr"`
	GeoTargets   []GeoTarget   `json:"geoTargets"`
	DayParts     []DayPart     `json:"dayParts"`
	CreativeSets []CreativeSet `json:"creativeSets"`
}

type GeoTarget struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type DayPart struct {
	Dow         string `json:"dow"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
}

// CreativeSet holds the creatives sharing per-day/total caps and segment
// classifications.
type CreativeSet struct {
	CreativeSetID string       `json:"creativeSetId"`
	PerDay        int          `json:"perDay"`
	TotalMax      int          `json:"totalMax"`
	Conversions   []Conversion `json:"conversions"`
	Segments      []Segment    `json:"segments"`
	Creatives     []Creative   `json:"creatives"`
}

type Conversion struct {
	Type              string `json:"type"`
	URLPattern        string `json:"urlPattern"`
	ObservationWindow int    `json:"observationWindow"`
}

type Segment struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Creative is a single advertisement variant within a creative set.
type Creative struct {
	CreativeInstanceID string  `json:"creativeInstanceId"`
	Payload            Payload `json:"payload"`
}

type Payload struct {
	CompanyName string `json:"companyName"`
	Alt         string `json:"alt"`
	TargetURL   string `json:"targetUrl"`
}
