package catalog

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-ads/internal/core/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const sampleCatalog = `{
  "version": 4,
  "ping": 7200000,
  "campaigns": [
    {
      "campaignId": "campaign-1",
      "advertiserId": "advertiser-1",
      "startAt": "2026-08-01T00:00:00Z",
      "endAt": "2026-09-01T00:00:00Z",
      "dailyCap": 2,
      "priority": 1,
      "ptr": 0.85,
      "geoTargets": [{"code": "US", "name": "United States"}],
      "dayParts": [{"dow": "12345", "startMinute": 540, "endMinute": 1020}],
      "creativeSets": [
        {
          "creativeSetId": "set-1",
          "perDay": 3,
          "totalMax": 10,
          "conversions": [{"type": "postview", "urlPattern": "https://acme.example.com/*", "observationWindow": 30}],
          "segments": [{"code": "t", "name": "Travel"}, {"code": "f", "name": "food & drink"}],
          "creatives": [
            {
              "creativeInstanceId": "instance-1",
              "payload": {"companyName": "Acme", "alt": "Acme sale", "targetUrl": "https://acme.example.com"}
            }
          ]
        }
      ]
    }
  ]
}`

func TestParseSampleCatalog(t *testing.T) {
	doc, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Version)
	require.Len(t, doc.Campaigns, 1)
	assert.Equal(t, "campaign-1", doc.Campaigns[0].CampaignID)
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	_, err := Parse([]byte("not json"))
	require.Error(t, err)
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	_, err := Parse([]byte(`{"version": 3, "campaigns": []}`))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestCreativeAdsFlattensCreativesAcrossSegments(t *testing.T) {
	doc, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	ads := doc.CreativeAds(discard)
	require.Len(t, ads, 2)

	travel := ads[0]
	assert.Equal(t, "instance-1", travel.CreativeInstanceID)
	assert.Equal(t, "set-1", travel.CreativeSetID)
	assert.Equal(t, "campaign-1", travel.CampaignID)
	assert.Equal(t, "advertiser-1", travel.AdvertiserID)
	assert.Equal(t, "Acme", travel.CompanyName)
	assert.Equal(t, "Acme sale", travel.Alt)
	assert.Equal(t, "https://acme.example.com", travel.TargetURL)
	assert.Equal(t, "Travel", travel.Category)
	assert.Equal(t, 0.85, travel.PTR)
	assert.True(t, travel.Conversion)
	assert.Equal(t, 3, travel.PerDay)
	assert.Equal(t, 10, travel.TotalMax)
	assert.Equal(t, 2, travel.DailyCap)
	assert.Equal(t, 1, travel.Priority)
	assert.Equal(t, []string{"US"}, travel.GeoTargets)
	assert.Equal(t, []domain.Daypart{{Dow: "12345", StartMinute: 540, EndMinute: 1020}}, travel.Dayparts)

	assert.Equal(t, "food & drink", ads[1].Category)
}

func TestCreativeAdsDefaultsMissingDayparts(t *testing.T) {
	doc, err := Parse([]byte(`{
      "version": 4,
      "campaigns": [{
        "campaignId": "campaign-1",
        "startAt": "2026-08-01T00:00:00Z",
        "endAt": "2026-09-01T00:00:00Z",
        "geoTargets": [{"code": "US"}],
        "creativeSets": [{
          "creativeSetId": "set-1",
          "segments": [{"name": "travel"}],
          "creatives": [{"creativeInstanceId": "instance-1"}]
        }]
      }]
    }`))
	require.NoError(t, err)

	ads := doc.CreativeAds(discard)
	require.Len(t, ads, 1)
	assert.Equal(t, []domain.Daypart{{Dow: "0123456", StartMinute: 0, EndMinute: 1439}}, ads[0].Dayparts)
	assert.False(t, ads[0].Conversion)
}

func TestCreativeAdsSkipsCampaignsWithoutGeoTargets(t *testing.T) {
	doc, err := Parse([]byte(`{
      "version": 4,
      "campaigns": [
        {
          "campaignId": "campaign-broken",
          "creativeSets": [{
            "creativeSetId": "set-1",
            "segments": [{"name": "travel"}],
            "creatives": [{"creativeInstanceId": "instance-1"}]
          }]
        },
        {
          "campaignId": "campaign-ok",
          "geoTargets": [{"code": "CA"}],
          "creativeSets": [{
            "creativeSetId": "set-2",
            "segments": [{"name": "travel"}],
            "creatives": [{"creativeInstanceId": "instance-2"}]
          }]
        }
      ]
    }`))
	require.NoError(t, err)

	ads := doc.CreativeAds(discard)
	require.Len(t, ads, 1)
	assert.Equal(t, "campaign-ok", ads[0].CampaignID)
}
