package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"local-ads/internal/core/domain"
)

// ErrUnsupportedVersion is returned for catalogs with a schema version
// this client does not understand.
var ErrUnsupportedVersion = errors.New("unsupported catalog version")

// fullWeekDaypart is substituted for campaigns that declare no dayparts:
// serve any minute of any day.
var fullWeekDaypart = domain.Daypart{Dow: "0123456", StartMinute: 0, EndMinute: 1439}

// Parse decodes and validates a catalog document. A malformed payload or
// an unsupported version is a data-format error.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if doc.Version != SupportedVersion {
		return nil, fmt.Errorf("catalog version %d: %w", doc.Version, ErrUnsupportedVersion)
	}
	return &doc, nil
}

// CreativeAds flattens the document into one creative ad per
// creative x segment, each carrying its campaign's scheduling and
// targeting attributes. Campaigns without geo targets are malformed; they
// are logged and skipped without failing the rest of the catalog.
func (doc *Document) CreativeAds(logger *slog.Logger) []domain.CreativeAd {
	var ads []domain.CreativeAd

	for _, campaign := range doc.Campaigns {
		if len(campaign.GeoTargets) == 0 {
			logger.Warn("skipping campaign without geo targets",
				slog.String("campaign_id", campaign.CampaignID))
			continue
		}

		geoTargets := make([]string, 0, len(campaign.GeoTargets))
		for _, geo := range campaign.GeoTargets {
			geoTargets = append(geoTargets, geo.Code)
		}

		dayparts := make([]domain.Daypart, 0, len(campaign.DayParts))
		for _, dp := range campaign.DayParts {
			dayparts = append(dayparts, domain.Daypart{
				Dow:         dp.Dow,
				StartMinute: dp.StartMinute,
				EndMinute:   dp.EndMinute,
			})
		}
		if len(dayparts) == 0 {
			dayparts = []domain.Daypart{fullWeekDaypart}
		}

		for _, set := range campaign.CreativeSets {
			for _, creative := range set.Creatives {
				for _, segment := range set.Segments {
					ads = append(ads, domain.CreativeAd{
						CreativeInstanceID: creative.CreativeInstanceID,
						CreativeSetID:      set.CreativeSetID,
						CampaignID:         campaign.CampaignID,
						AdvertiserID:       campaign.AdvertiserID,
						CompanyName:        creative.Payload.CompanyName,
						Alt:                creative.Payload.Alt,
						TargetURL:          creative.Payload.TargetURL,
						Category:           segment.Name,
						StartAt:            campaign.StartAt,
						EndAt:              campaign.EndAt,
						PTR:                campaign.PTR,
						Conversion:         len(set.Conversions) > 0,
						PerDay:             set.PerDay,
						TotalMax:           set.TotalMax,
						DailyCap:           campaign.DailyCap,
						Priority:           campaign.Priority,
						GeoTargets:         geoTargets,
						Dayparts:           dayparts,
					})
				}
			}
		}
	}
	return ads
}
