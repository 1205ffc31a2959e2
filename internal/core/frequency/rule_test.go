package frequency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-ads/internal/core/domain"
)

// fakeHistory serves canned timestamp sequences keyed by event type and
// dimension key.
type fakeHistory struct {
	events map[string][]time.Time
}

func (f *fakeHistory) GetHistoryFor(_ context.Context, eventType, key string) []time.Time {
	return f.events[eventType+"/"+key]
}

var testNow = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

func historyOf(times ...time.Time) *fakeHistory {
	return &fakeHistory{events: map[string][]time.Time{
		domain.AdEventLanded + "/campaign-1": times,
		domain.AdEventViewed + "/set-1":      times,
		domain.AdEventViewed + "/campaign-1": times,
	}}
}

func TestLandedCap(t *testing.T) {
	ad := domain.CreativeAd{CampaignID: "campaign-1", CreativeSetID: "set-1"}

	cases := []struct {
		name    string
		history *fakeHistory
		exclude bool
	}{
		{name: "no events", history: historyOf(), exclude: false},
		{name: "one event within 48h", history: historyOf(testNow.Add(-time.Hour)), exclude: true},
		{name: "one event 49h ago", history: historyOf(testNow.Add(-49 * time.Hour)), exclude: false},
		{name: "one event exactly 47h59m ago", history: historyOf(testNow.Add(-48*time.Hour + time.Minute)), exclude: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := NewLandedCap(tc.history)
			rule.now = func() time.Time { return testNow }

			got := rule.ShouldExclude(context.Background(), ad)
			assert.Equal(t, tc.exclude, got)
			if tc.exclude {
				assert.Contains(t, rule.LastMessage(), "campaign-1")
			}
		})
	}
}

func TestLandedCapUnknownCampaignHasEmptyHistory(t *testing.T) {
	rule := NewLandedCap(historyOf(testNow.Add(-time.Hour)))
	rule.now = func() time.Time { return testNow }

	ad := domain.CreativeAd{CampaignID: "campaign-unknown"}
	assert.False(t, rule.ShouldExclude(context.Background(), ad))
}

func TestPerDayCap(t *testing.T) {
	ad := domain.CreativeAd{CampaignID: "campaign-1", CreativeSetID: "set-1", PerDay: 2}

	recent := historyOf(testNow.Add(-time.Hour), testNow.Add(-2*time.Hour))
	rule := NewPerDayCap(recent)
	rule.now = func() time.Time { return testNow }
	require.True(t, rule.ShouldExclude(context.Background(), ad))
	assert.Contains(t, rule.LastMessage(), "set-1")

	stale := historyOf(testNow.Add(-25*time.Hour), testNow.Add(-30*time.Hour))
	rule = NewPerDayCap(stale)
	rule.now = func() time.Time { return testNow }
	assert.False(t, rule.ShouldExclude(context.Background(), ad))
}

func TestPerDayCapZeroMeansUncapped(t *testing.T) {
	rule := NewPerDayCap(historyOf(testNow.Add(-time.Minute), testNow.Add(-time.Hour)))
	rule.now = func() time.Time { return testNow }

	ad := domain.CreativeAd{CreativeSetID: "set-1", PerDay: 0}
	assert.False(t, rule.ShouldExclude(context.Background(), ad))
}

func TestTotalMaxCapCountsWholeLifetime(t *testing.T) {
	old := historyOf(
		testNow.Add(-100*24*time.Hour),
		testNow.Add(-50*24*time.Hour),
		testNow.Add(-time.Hour),
	)
	rule := NewTotalMaxCap(old)
	rule.now = func() time.Time { return testNow }

	ad := domain.CreativeAd{CreativeSetID: "set-1", TotalMax: 3}
	require.True(t, rule.ShouldExclude(context.Background(), ad))

	ad.TotalMax = 4
	assert.False(t, rule.ShouldExclude(context.Background(), ad))
}

func TestDailyCap(t *testing.T) {
	rule := NewDailyCap(historyOf(testNow.Add(-time.Hour), testNow.Add(-23*time.Hour)))
	rule.now = func() time.Time { return testNow }

	ad := domain.CreativeAd{CampaignID: "campaign-1", DailyCap: 2}
	require.True(t, rule.ShouldExclude(context.Background(), ad))

	ad.DailyCap = 3
	assert.False(t, rule.ShouldExclude(context.Background(), ad))

	ad.DailyCap = 0
	assert.False(t, rule.ShouldExclude(context.Background(), ad))
}

func TestRespectsCapIgnoresFutureEvents(t *testing.T) {
	history := []time.Time{testNow.Add(time.Hour)}
	assert.True(t, respectsCap(history, 48*time.Hour, 1, testNow))
}
