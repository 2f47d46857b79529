package ports

import (
	"context"
	"errors"

	notifications "shipment-reconciler/internal/features/notifications/domain"
	"shipment-reconciler/internal/features/tracking/domain"
)

// ErrDuplicateEvent is returned by TrackingEventRepository.Insert when an event
// with the same idempotency key is already stored.
var ErrDuplicateEvent = errors.New("duplicate tracking event")

// TrackingEventRepository is the append-only ledger of carrier events.
type TrackingEventRepository interface {
	// Exists reports whether an event with the given key is stored.
	Exists(ctx context.Context, key domain.IdempotencyKey) (bool, error)
	// Insert appends the event. Returns ErrDuplicateEvent when the key is taken.
	Insert(ctx context.Context, event *domain.TrackingEvent) error
	// MarkProcessed flags the event processed and links it to its shipment.
	MarkProcessed(ctx context.Context, id string, shipmentID *string) error
	// ListByWaybill returns the waybill's events ordered by status time.
	ListByWaybill(ctx context.Context, waybill string) ([]domain.TrackingEvent, error)
}

// ShipmentRepository stores the primary shipment aggregate.
// Find methods return (nil, nil) when nothing matches.
type ShipmentRepository interface {
	// FindByReference locks and returns the shipment with the given external reference.
	FindByReference(ctx context.Context, referenceID string) (*domain.Shipment, error)
	// FindByWaybill locks and returns the shipment with the given tracking id.
	FindByWaybill(ctx context.Context, waybill string) (*domain.Shipment, error)
	// Save inserts or updates the shipment.
	Save(ctx context.Context, shipment *domain.Shipment) error
}

// ShadowRepository stores the read-optimised tracking projection.
type ShadowRepository interface {
	// FindByWaybill returns the projection, or (nil, nil) when absent.
	FindByWaybill(ctx context.Context, waybill string) (*domain.ShadowTrackingRecord, error)
	// Save upserts the projection by waybill.
	Save(ctx context.Context, record *domain.ShadowTrackingRecord) error
}

// TxRepositories exposes repositories bound to one transaction.
type TxRepositories interface {
	Events() TrackingEventRepository
	Shipments() ShipmentRepository
	Shadows() ShadowRepository
}

// UnitOfWork runs fn atomically. Returning an error from fn rolls back every
// write made through the repositories it was given.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos TxRepositories) error) error
}

// Store is the persistence port of the tracking feature.
type Store interface {
	UnitOfWork
	// Repositories returns repositories outside any transaction, for reads.
	Repositories() TxRepositories
	// Ping checks the backing database.
	Ping(ctx context.Context) error
}

// SeenCache is a fast, lossy memory of idempotency keys already committed.
type SeenCache interface {
	// Seen reports whether the key was remembered.
	Seen(ctx context.Context, key domain.IdempotencyKey) (bool, error)
	// Remember records the key.
	Remember(ctx context.Context, key domain.IdempotencyKey) error
}

// StatusNotifier is told about every applied shipment transition after commit.
// Notify must not block on delivery.
type StatusNotifier interface {
	Notify(ctx context.Context, recipientID string, change notifications.StatusChange)
}
