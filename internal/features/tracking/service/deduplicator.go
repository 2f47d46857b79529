package service

import (
	"context"
	"fmt"

	"shipment-reconciler/internal/core/logger"
	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// Deduplicator answers "has this carrier event been seen before?".
//
// The answer is a pre-check only: the unique index behind
// TrackingEventRepository.Insert is authoritative under concurrency. The
// optional seen cache fronts the store query and may be stale or unavailable.
type Deduplicator struct {
	events ports.TrackingEventRepository
	seen   ports.SeenCache
	log    *zap.Logger
}

// NewDeduplicator creates a Deduplicator. seen may be nil.
func NewDeduplicator(events ports.TrackingEventRepository, seen ports.SeenCache) *Deduplicator {
	return &Deduplicator{
		events: events,
		seen:   seen,
		log:    logger.Named("dedup"),
	}
}

// Exists reports whether an event with key was already recorded.
func (d *Deduplicator) Exists(ctx context.Context, key domain.IdempotencyKey) (bool, error) {
	if d.seen != nil {
		seen, err := d.seen.Seen(ctx, key)
		if err != nil {
			d.log.Warn("Seen cache unavailable, falling back to store", zap.Error(err))
		} else if seen {
			return true, nil
		}
	}

	exists, err := d.events.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}
	if exists {
		d.Remember(ctx, key)
	}
	return exists, nil
}

// Remember records a committed key in the seen cache. Failures are logged only.
func (d *Deduplicator) Remember(ctx context.Context, key domain.IdempotencyKey) {
	if d.seen == nil {
		return
	}
	if err := d.seen.Remember(ctx, key); err != nil {
		d.log.Warn("Failed to remember event key", zap.String("key", key.String()), zap.Error(err))
	}
}
