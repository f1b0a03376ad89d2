// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/sommelier/internal/platform/apperr"
	"github.com/taibuivan/sommelier/internal/platform/constants"
	"github.com/taibuivan/sommelier/internal/platform/metrics"
)

// Reload triggers, used as log attributes and metric labels.
const (
	TriggerStartup  = "startup"
	TriggerInterval = "interval"
	TriggerChange   = "change"
	TriggerManual   = "manual"
)

// SwapHook runs after a new snapshot becomes current.
type SwapHook func(context context.Context, snapshot *Snapshot)

// Provider owns the current catalog [Snapshot].
//
// Readers call [Provider.Current] and get a consistent snapshot without
// locking. Reloads build a complete new snapshot off to the side and publish
// it with a single atomic store.
type Provider struct {
	repository Repository
	logger     *slog.Logger

	current atomic.Pointer[Snapshot]
	version atomic.Uint64
	reloads singleflight.Group

	hooksMu sync.Mutex
	hooks   []SwapHook
}

// NewProvider creates a provider with no snapshot loaded.
func NewProvider(repository Repository, logger *slog.Logger) *Provider {
	return &Provider{repository: repository, logger: logger}
}

// OnSwap registers a hook invoked after every successful swap.
func (provider *Provider) OnSwap(hook SwapHook) {
	provider.hooksMu.Lock()
	defer provider.hooksMu.Unlock()
	provider.hooks = append(provider.hooks, hook)
}

/*
Current returns the active snapshot.

Returns:
  - *Snapshot: The snapshot to compute one request against
  - error: apperr.Unavailable if no snapshot has ever loaded
*/
func (provider *Provider) Current() (*Snapshot, error) {
	snapshot := provider.current.Load()
	if snapshot == nil {
		return nil, apperr.Unavailable("Catalog", nil)
	}
	return snapshot, nil
}

/*
Reload loads the catalog and swaps in a new snapshot.

Concurrent callers share one load. On failure the previous snapshot stays
current and the error is returned to every waiting caller.

Parameters:
  - context: Bounds the wait of this caller only
  - trigger: Why the reload happened (Trigger* constants)

Returns:
  - *Snapshot: The snapshot now current
  - error: The classified load error
*/
func (provider *Provider) Reload(context context.Context, trigger string) (*Snapshot, error) {
	result := provider.reloads.DoChan("catalog", func() (any, error) {
		return provider.load(trigger)
	})

	select {
	case outcome := <-result:
		if outcome.Err != nil {
			return nil, outcome.Err
		}
		return outcome.Val.(*Snapshot), nil
	case <-context.Done():
		return nil, apperr.Unavailable("Catalog", context.Err())
	}
}

// load runs detached from any single caller so one cancelled request cannot
// fail the reload every other waiter shares.
func (provider *Provider) load(trigger string) (*Snapshot, error) {
	loadContext, cancel := context.WithTimeout(context.Background(), constants.CatalogLoadTimeout)
	defer cancel()

	start := time.Now()
	records, err := provider.repository.LoadAll(loadContext)
	metrics.RecordReload(trigger, time.Since(start), err)

	if err != nil {
		provider.logger.Error("catalog_reload_failed",
			slog.String("trigger", trigger),
			slog.Any("error", err),
		)
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.Unavailable("Catalog", err)
	}

	snapshot := NewSnapshot(records, provider.version.Add(1), time.Now())
	previous := provider.current.Swap(snapshot)
	metrics.SetSnapshot(snapshot.Version(), snapshot.Len(), len(snapshot.Rejected()))

	for _, rejection := range snapshot.Rejected() {
		provider.logger.Warn("catalog_record_rejected",
			slog.Int64("wine_id", rejection.ID),
			slog.String("reason", rejection.Reason),
		)
	}

	attributes := []any{
		slog.String("trigger", trigger),
		slog.Uint64("version", snapshot.Version()),
		slog.Int("wines", snapshot.Len()),
		slog.Int("rejected", len(snapshot.Rejected())),
		slog.Duration("took", time.Since(start)),
	}
	if previous != nil {
		attributes = append(attributes, slog.Int("previous_wines", previous.Len()))
	}
	provider.logger.Info("catalog_snapshot_swapped", attributes...)

	provider.hooksMu.Lock()
	hooks := append([]SwapHook(nil), provider.hooks...)
	provider.hooksMu.Unlock()

	for _, hook := range hooks {
		hook(loadContext, snapshot)
	}

	return snapshot, nil
}

/*
Refresh reloads the catalog every interval until the context is cancelled.

Failures are logged and retried on the next tick; the previous snapshot
keeps serving in between. A non-positive interval is an error.
*/
func (provider *Provider) Refresh(context context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("catalog: refresh interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			return nil
		case <-ticker.C:
			_, _ = provider.Reload(context, TriggerInterval)
		}
	}
}

/*
Watch reloads the catalog whenever the write path publishes on the
catalog:changed channel.

Bursts of notifications that arrive while a reload is pending collapse into
one reload. Returns when the context is cancelled.
*/
func (provider *Provider) Watch(context context.Context, client *redis.Client) error {
	subscription := client.Subscribe(context, constants.RedisChannelCatalogChanged)
	defer func() { _ = subscription.Close() }()

	// Wait for the subscription confirmation so startup fails loudly on a bad Redis
	if _, err := subscription.Receive(context); err != nil {
		if context.Err() != nil {
			return nil
		}
		return err
	}

	provider.logger.Info("catalog_watch_started", slog.String("channel", constants.RedisChannelCatalogChanged))
	provider.listen(context, subscription.Channel())
	return nil
}

func (provider *Provider) listen(context context.Context, notifications <-chan *redis.Message) {
	for {
		select {
		case <-context.Done():
			return
		case message, ok := <-notifications:
			if !ok {
				return
			}

			// Drain whatever queued up behind this message
			coalesced := 1
		drain:
			for {
				select {
				case _, ok := <-notifications:
					if !ok {
						break drain
					}
					coalesced++
				default:
					break drain
				}
			}

			provider.logger.Debug("catalog_change_received",
				slog.String("payload", message.Payload),
				slog.Int("coalesced", coalesced),
			)
			_, _ = provider.Reload(context, TriggerChange)
		}
	}
}
