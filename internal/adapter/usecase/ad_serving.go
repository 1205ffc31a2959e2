package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/frequency"
	"local-ads/internal/core/port"
)

// AdServing selects creatives for interest categories. Candidates come
// from the creative store, are filtered through the frequency-cap rules
// and ranked by campaign priority. It implements port.AdServing.
type AdServing struct {
	store  port.CreativeStore
	events port.AdEventStore
	rules  []frequency.ExclusionRule
	logger *slog.Logger
}

func NewAdServing(store port.CreativeStore, events port.AdEventStore, logger *slog.Logger) *AdServing {
	return &AdServing{
		store:  store,
		events: events,
		rules: []frequency.ExclusionRule{
			frequency.NewLandedCap(events),
			frequency.NewPerDayCap(events),
			frequency.NewTotalMaxCap(events),
			frequency.NewDailyCap(events),
		},
		logger: logger,
	}
}

// ServeAd returns the best eligible ad for the given categories, or nil
// when nothing matches or every candidate is frequency-capped. A viewed
// event is recorded for the chosen ad so the per-day and total caps see
// it.
func (u *AdServing) ServeAd(ctx context.Context, categories []string) (*domain.CreativeAd, error) {
	_, candidates, err := u.store.GetForCategories(ctx, categories)
	if err != nil {
		return nil, err
	}

	var chosen *domain.CreativeAd
	for i := range candidates {
		if u.excluded(ctx, candidates[i]) {
			continue
		}
		if chosen == nil || better(candidates[i], *chosen) {
			chosen = &candidates[i]
		}
	}
	if chosen == nil {
		return nil, nil
	}

	event := domain.AdEvent{
		ID:                 uuid.NewString(),
		CampaignID:         chosen.CampaignID,
		CreativeSetID:      chosen.CreativeSetID,
		CreativeInstanceID: chosen.CreativeInstanceID,
		Type:               domain.AdEventViewed,
		CreatedAt:          time.Now().UTC(),
	}
	if err = u.events.RecordAdEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("record viewed event: %w", err)
	}
	return chosen, nil
}

// RegisterLanding records that the user landed on the creative's target
// page. The landed frequency cap consumes these events.
func (u *AdServing) RegisterLanding(ctx context.Context, creativeInstanceID string) error {
	ad, err := u.store.GetForCreativeInstanceID(ctx, creativeInstanceID)
	if err != nil {
		return err
	}

	return u.events.RecordAdEvent(ctx, domain.AdEvent{
		ID:                 uuid.NewString(),
		CampaignID:         ad.CampaignID,
		CreativeSetID:      ad.CreativeSetID,
		CreativeInstanceID: ad.CreativeInstanceID,
		Type:               domain.AdEventLanded,
		CreatedAt:          time.Now().UTC(),
	})
}

func (u *AdServing) excluded(ctx context.Context, ad domain.CreativeAd) bool {
	for _, rule := range u.rules {
		if rule.ShouldExclude(ctx, ad) {
			u.logger.Debug("ad excluded",
				slog.String("creative_instance_id", ad.CreativeInstanceID),
				slog.String("reason", rule.LastMessage()))
			return true
		}
	}
	return false
}

// better ranks a over b: lower priority value wins, pass-through rate
// breaks ties, creative instance id keeps the order deterministic.
func better(a, b domain.CreativeAd) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.PTR != b.PTR {
		return a.PTR > b.PTR
	}
	return a.CreativeInstanceID < b.CreativeInstanceID
}
