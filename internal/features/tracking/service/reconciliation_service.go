package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-reconciler/internal/core/logger"
	notifications "shipment-reconciler/internal/features/notifications/domain"
	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// Result is the outcome of processing one webhook.
type Result struct {
	// Success is true for every accepted payload, duplicates and unmatched events included.
	Success bool `json:"success"`
	// Duplicate is true when the event had already been recorded.
	Duplicate bool `json:"duplicate,omitempty"`
	// Waybill is the carrier tracking id of the payload.
	Waybill string `json:"waybill,omitempty"`
	// ShipmentUpdated is true when a state transition was written.
	ShipmentUpdated bool `json:"shipment_updated"`
	// Status is the shipment's canonical status after processing, when a shipment matched.
	Status domain.CanonicalStatus `json:"status,omitempty"`
	// Outcome is the state machine decision, when a shipment matched.
	Outcome domain.Outcome `json:"outcome,omitempty"`
}

// ReconciliationService turns carrier webhooks into shipment state.
type ReconciliationService struct {
	store    ports.Store
	dedup    *Deduplicator
	notifier ports.StatusNotifier
	policy   domain.NDRPolicy
	now      func() time.Time
	log      *zap.Logger
}

// Option configures a ReconciliationService.
type Option func(*ReconciliationService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *ReconciliationService) { s.now = now }
}

// WithNDRPolicy overrides the failed-delivery retry policy.
func WithNDRPolicy(p domain.NDRPolicy) Option {
	return func(s *ReconciliationService) { s.policy = p }
}

// NewReconciliationService creates a new ReconciliationService. notifier may be nil.
func NewReconciliationService(store ports.Store, dedup *Deduplicator, notifier ports.StatusNotifier, opts ...Option) *ReconciliationService {
	s := &ReconciliationService{
		store:    store,
		dedup:    dedup,
		notifier: notifier,
		policy:   domain.DefaultNDRPolicy,
		now:      func() time.Time { return time.Now().UTC() },
		log:      logger.Named("reconciler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// pendingNotification is a status change to publish once the transaction commits.
type pendingNotification struct {
	recipientID string
	change      notifications.StatusChange
}

// Process records the webhook's event and, when it matches a shipment, applies
// the resulting transition to the shipment and its tracking projection in one
// transaction. Redelivered events are reported as duplicates, not errors.
func (s *ReconciliationService) Process(ctx context.Context, payload domain.WebhookPayload, raw []byte) (Result, error) {
	now := s.now()

	event, err := payload.ToTrackingEvent(raw, now)
	if err != nil {
		return Result{Waybill: payload.Waybill()}, err
	}

	log := s.log.With(
		zap.String("waybill", event.Waybill),
		zap.String("carrier_status", event.Status),
		zap.String("carrier_status_type", event.StatusType),
		zap.Time("status_time", event.StatusTime),
	)
	key := event.Key()

	seen, err := s.dedup.Exists(ctx, key)
	if err != nil {
		return Result{Waybill: event.Waybill}, err
	}
	if seen {
		log.Debug("Duplicate tracking event ignored")
		return Result{Success: true, Duplicate: true, Waybill: event.Waybill}, nil
	}

	var (
		result  Result
		pending *pendingNotification
	)

	err = s.store.Execute(ctx, func(repos ports.TxRepositories) error {
		result = Result{Success: true, Waybill: event.Waybill}
		pending = nil

		if err := repos.Events().Insert(ctx, &event); err != nil {
			return err
		}

		shipment, err := findShipment(ctx, repos.Shipments(), event)
		if err != nil {
			return err
		}
		if shipment == nil {
			log.Info("No shipment matches tracking event")
			return repos.Events().MarkProcessed(ctx, event.ID, nil)
		}

		mapped, known := domain.MapStatus(event.Status, event.StatusType)
		if !known {
			log.Warn("Unknown carrier status, defaulting", zap.String("mapped_status", string(mapped)))
		}

		transition := domain.Evaluate(shipment.Status, mapped)
		result.Outcome = transition.Outcome
		result.Status = transition.To

		switch transition.Outcome {
		case domain.OutcomeApplied:
			shipment.Apply(transition, event, now, s.policy)
			if err := repos.Shipments().Save(ctx, shipment); err != nil {
				return err
			}

			shadow, err := repos.Shadows().FindByWaybill(ctx, event.Waybill)
			if err != nil {
				return err
			}
			if shadow == nil {
				shadow = domain.NewShadowTrackingRecord(event.Waybill)
			}
			shadow.Mirror(shipment, event, now)
			if err := repos.Shadows().Save(ctx, shadow); err != nil {
				return err
			}

			result.ShipmentUpdated = true
			pending = &pendingNotification{
				recipientID: shipment.OwnerID,
				change: notifications.StatusChange{
					ShipmentID:  shipment.ID,
					ReferenceID: shipment.ReferenceID,
					Waybill:     event.Waybill,
					OldStatus:   string(transition.From),
					NewStatus:   string(transition.To),
					Location:    event.StatusLocation,
					Timestamp:   event.StatusTime,
				},
			}
			log.Info("Shipment status updated",
				zap.String("shipment_id", shipment.ID),
				zap.String("from", string(transition.From)),
				zap.String("to", string(transition.To)),
			)
		case domain.OutcomeLocked:
			log.Info("Transition refused, shipment is terminal",
				zap.String("shipment_id", shipment.ID),
				zap.String("current", string(transition.From)),
				zap.String("attempted", string(mapped)),
			)
		default:
			log.Debug("Status unchanged", zap.String("shipment_id", shipment.ID))
		}

		shipmentID := shipment.ID
		return repos.Events().MarkProcessed(ctx, event.ID, &shipmentID)
	})
	if err != nil {
		if errors.Is(err, ports.ErrDuplicateEvent) {
			log.Debug("Duplicate tracking event lost the insert race")
			s.dedup.Remember(ctx, key)
			return Result{Success: true, Duplicate: true, Waybill: event.Waybill}, nil
		}
		log.Error("Failed to reconcile tracking event", zap.Error(err))
		return Result{Waybill: event.Waybill}, fmt.Errorf("failed to reconcile tracking event: %w", err)
	}

	s.dedup.Remember(ctx, key)

	if pending != nil && s.notifier != nil {
		s.notifier.Notify(ctx, pending.recipientID, pending.change)
	}

	return result, nil
}

// findShipment resolves the event's shipment by external reference first,
// then by tracking id.
func findShipment(ctx context.Context, shipments ports.ShipmentRepository, event domain.TrackingEvent) (*domain.Shipment, error) {
	if event.ReferenceID != nil {
		shipment, err := shipments.FindByReference(ctx, *event.ReferenceID)
		if err != nil || shipment != nil {
			return shipment, err
		}
	}
	return shipments.FindByWaybill(ctx, event.Waybill)
}
