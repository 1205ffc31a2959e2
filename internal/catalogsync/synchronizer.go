// Package catalogsync keeps the local creative store in step with the
// remote ad catalog. One download is in flight at most; failures are
// retried indefinitely with capped, jittered exponential backoff, and a
// successfully applied catalog schedules the next nominal refresh.
package catalogsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"local-ads/internal/catalog"
	"local-ads/internal/core/port"
)

// Synchronizer drives the download/apply cycle. States: idle,
// downloading, retry-scheduled; at most one timer (retry or refresh) is
// pending at any time.
type Synchronizer struct {
	url             string
	refreshInterval time.Duration

	downloader port.Downloader
	store      port.CreativeStore
	meta       port.CatalogMetaStore
	logger     *slog.Logger
	now        func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	downloading  bool
	retryPending bool
	timer        *time.Timer
	retry        *backoff.ExponentialBackOff
	lastUpdated  time.Time
}

// New constructs a stopped synchronizer; call Start to load persisted
// state and begin syncing.
func New(url string, refreshInterval, retryCeiling time.Duration,
	downloader port.Downloader, store port.CreativeStore,
	meta port.CatalogMetaStore, logger *slog.Logger) *Synchronizer {

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = time.Minute
	retry.MaxInterval = retryCeiling
	retry.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	return &Synchronizer{
		url:             url,
		refreshInterval: refreshInterval,
		downloader:      downloader,
		store:           store,
		meta:            meta,
		logger:          logger,
		now:             time.Now,
		ctx:             ctx,
		cancel:          cancel,
		retry:           retry,
	}
}

// Start reads the persisted last-updated timestamp and triggers the first
// download.
func (s *Synchronizer) Start(ctx context.Context) error {
	lastUpdated, err := s.meta.LastUpdated(ctx)
	if err != nil {
		return fmt.Errorf("load catalog state: %w", err)
	}

	s.mu.Lock()
	s.lastUpdated = lastUpdated
	s.mu.Unlock()

	s.MaybeDownload()
	return nil
}

// MaybeDownload triggers a catalog download unless one is already in
// flight or a retry is pending; in either case it is a benign no-op, not
// a queued request.
func (s *Synchronizer) MaybeDownload() {
	s.mu.Lock()
	if s.ctx.Err() != nil || s.downloading || s.retryPending {
		s.mu.Unlock()
		return
	}
	s.downloading = true
	s.stopTimerLocked()
	s.mu.Unlock()

	go s.download()
}

// LastUpdated returns when the last catalog was successfully applied; the
// zero time means never.
func (s *Synchronizer) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}

// Stop cancels any in-flight download and pending timer. No download
// result is applied after Stop returns.
func (s *Synchronizer) Stop() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *Synchronizer) download() {
	s.logger.Info("downloading catalog", slog.String("url", s.url))

	err := s.downloadAndApply()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloading = false
	if s.ctx.Err() != nil {
		return
	}

	if err != nil {
		delay := s.retry.NextBackOff()
		s.logger.Warn("catalog sync failed",
			slog.Any("error", err),
			slog.Duration("retry_in", delay))
		s.retryPending = true
		s.scheduleLocked(delay, s.onRetry)
		return
	}

	s.lastUpdated = s.now()
	s.retry.Reset()
	s.logger.Info("catalog applied",
		slog.Time("last_updated", s.lastUpdated),
		slog.Duration("next_refresh", s.refreshInterval))
	s.scheduleLocked(s.refreshInterval, s.onRefresh)
}

// downloadAndApply runs one full fetch-parse-persist cycle. Transport
// failures, non-2xx statuses and unparsable payloads are all treated
// identically: the catalog did not apply.
func (s *Synchronizer) downloadAndApply() error {
	resp, err := s.downloader.Download(s.ctx, s.url)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return fmt.Errorf("catalog server returned status %d", resp.Status)
	}

	doc, err := catalog.Parse(resp.Body)
	if err != nil {
		return err
	}
	ads := doc.CreativeAds(s.logger)

	// A download that raced Stop must not be applied.
	if err = s.ctx.Err(); err != nil {
		return err
	}

	// Full replace: the store reflects exactly the last successfully
	// applied catalog. A failure between delete and save leaves the
	// store empty until the retry lands, which the next full sync heals.
	if err = s.store.Delete(s.ctx); err != nil {
		return fmt.Errorf("clear stale catalog: %w", err)
	}
	if err = s.store.Save(s.ctx, ads); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	if err = s.meta.SetLastUpdated(s.ctx, s.now()); err != nil {
		return fmt.Errorf("persist catalog state: %w", err)
	}

	s.logger.Info("catalog persisted", slog.Int("creative_ads", len(ads)))
	return nil
}

func (s *Synchronizer) onRetry() {
	s.mu.Lock()
	if s.ctx.Err() != nil || s.downloading {
		s.mu.Unlock()
		return
	}
	s.retryPending = false
	s.downloading = true
	s.timer = nil
	s.mu.Unlock()

	s.download()
}

func (s *Synchronizer) onRefresh() {
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()

	s.MaybeDownload()
}

// scheduleLocked arms the single pending timer. The caller holds s.mu.
func (s *Synchronizer) scheduleLocked(delay time.Duration, fn func()) {
	s.stopTimerLocked()
	s.timer = time.AfterFunc(delay, fn)
}

func (s *Synchronizer) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
