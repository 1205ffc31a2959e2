package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeCreativeStore struct {
	ads []domain.CreativeAd
}

func (f *fakeCreativeStore) Save(_ context.Context, ads []domain.CreativeAd) error {
	f.ads = append(f.ads, ads...)
	return nil
}

func (f *fakeCreativeStore) Delete(context.Context) error {
	f.ads = nil
	return nil
}

func (f *fakeCreativeStore) GetForCreativeInstanceID(_ context.Context, id string) (domain.CreativeAd, error) {
	if id == "" {
		return domain.CreativeAd{}, port.ErrEmptyCreativeInstanceID
	}
	for _, ad := range f.ads {
		if ad.CreativeInstanceID == id {
			return ad, nil
		}
	}
	return domain.CreativeAd{}, port.ErrCreativeNotFound
}

func (f *fakeCreativeStore) GetForCategories(_ context.Context, categories []string) ([]string, []domain.CreativeAd, error) {
	if len(categories) == 0 {
		return nil, nil, nil
	}
	return categories, f.ads, nil
}

func (f *fakeCreativeStore) GetAll(context.Context) ([]string, []domain.CreativeAd, error) {
	return nil, f.ads, nil
}

// fakeEvents mirrors the SQLite event store: an appended event is visible
// under its campaign, creative-set and creative-instance keys.
type fakeEvents struct {
	events []domain.AdEvent
}

func (f *fakeEvents) RecordAdEvent(_ context.Context, event domain.AdEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEvents) GetHistoryFor(_ context.Context, eventType, key string) []time.Time {
	var history []time.Time
	for _, e := range f.events {
		if e.Type != eventType {
			continue
		}
		if e.CampaignID == key || e.CreativeSetID == key || e.CreativeInstanceID == key {
			history = append(history, e.CreatedAt)
		}
	}
	return history
}

func candidate(instanceID, campaignID string, priority int) domain.CreativeAd {
	return domain.CreativeAd{
		CreativeInstanceID: instanceID,
		CreativeSetID:      "set-" + campaignID,
		CampaignID:         campaignID,
		Category:           "travel",
		Priority:           priority,
	}
}

func TestServeAdPicksLowestPriorityValue(t *testing.T) {
	store := &fakeCreativeStore{ads: []domain.CreativeAd{
		candidate("instance-1", "campaign-1", 3),
		candidate("instance-2", "campaign-2", 1),
		candidate("instance-3", "campaign-3", 2),
	}}
	svc := NewAdServing(store, &fakeEvents{}, discard)

	ad, err := svc.ServeAd(context.Background(), []string{"travel"})
	require.NoError(t, err)
	require.NotNil(t, ad)
	assert.Equal(t, "instance-2", ad.CreativeInstanceID)
}

func TestServeAdNothingMatches(t *testing.T) {
	svc := NewAdServing(&fakeCreativeStore{}, &fakeEvents{}, discard)

	ad, err := svc.ServeAd(context.Background(), []string{"travel"})
	require.NoError(t, err)
	assert.Nil(t, ad)
}

func TestServeAdExcludesLandedCampaign(t *testing.T) {
	store := &fakeCreativeStore{ads: []domain.CreativeAd{
		candidate("instance-1", "campaign-1", 1),
		candidate("instance-2", "campaign-2", 2),
	}}
	events := &fakeEvents{events: []domain.AdEvent{{
		ID:         "event-1",
		CampaignID: "campaign-1",
		Type:       domain.AdEventLanded,
		CreatedAt:  time.Now().Add(-time.Hour),
	}}}
	svc := NewAdServing(store, events, discard)

	// campaign-1 outranks campaign-2 but was landed on within 48 hours.
	ad, err := svc.ServeAd(context.Background(), []string{"travel"})
	require.NoError(t, err)
	require.NotNil(t, ad)
	assert.Equal(t, "instance-2", ad.CreativeInstanceID)
}

func TestServeAdRecordsViewedEvent(t *testing.T) {
	store := &fakeCreativeStore{ads: []domain.CreativeAd{
		candidate("instance-1", "campaign-1", 1),
	}}
	events := &fakeEvents{}
	svc := NewAdServing(store, events, discard)

	_, err := svc.ServeAd(context.Background(), []string{"travel"})
	require.NoError(t, err)

	require.Len(t, events.events, 1)
	event := events.events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.AdEventViewed, event.Type)
	assert.Equal(t, "campaign-1", event.CampaignID)
	assert.Equal(t, "instance-1", event.CreativeInstanceID)
}

func TestServeAdEventuallyExhaustsPerDayCap(t *testing.T) {
	ad := candidate("instance-1", "campaign-1", 1)
	ad.PerDay = 2
	store := &fakeCreativeStore{ads: []domain.CreativeAd{ad}}
	events := &fakeEvents{}
	svc := NewAdServing(store, events, discard)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		served, err := svc.ServeAd(ctx, []string{"travel"})
		require.NoError(t, err)
		require.NotNil(t, served)
	}

	served, err := svc.ServeAd(ctx, []string{"travel"})
	require.NoError(t, err)
	assert.Nil(t, served)
}

func TestRegisterLanding(t *testing.T) {
	store := &fakeCreativeStore{ads: []domain.CreativeAd{
		candidate("instance-1", "campaign-1", 1),
	}}
	events := &fakeEvents{}
	svc := NewAdServing(store, events, discard)
	ctx := context.Background()

	require.NoError(t, svc.RegisterLanding(ctx, "instance-1"))
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.AdEventLanded, events.events[0].Type)
	assert.Equal(t, "campaign-1", events.events[0].CampaignID)

	err := svc.RegisterLanding(ctx, "no-such-id")
	require.ErrorIs(t, err, port.ErrCreativeNotFound)

	err = svc.RegisterLanding(ctx, "")
	require.ErrorIs(t, err, port.ErrEmptyCreativeInstanceID)
}
