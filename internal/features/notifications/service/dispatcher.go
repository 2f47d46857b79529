package service

import (
	"context"
	"sync"
	"time"

	"shipment-reconciler/internal/core/logger"
	"shipment-reconciler/internal/features/notifications/domain"
	"shipment-reconciler/internal/features/notifications/ports"

	"go.uber.org/zap"
)

const defaultPublishTimeout = 5 * time.Second

// Dispatcher publishes status changes in the background. Delivery is best
// effort: failures and panics are logged and never reach the caller.
type Dispatcher struct {
	publisher ports.Publisher
	timeout   time.Duration
	log       *zap.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A non-positive timeout uses the default.
func NewDispatcher(publisher ports.Publisher, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Dispatcher{
		publisher: publisher,
		timeout:   timeout,
		log:       logger.Named("notifications"),
	}
}

// Notify schedules the publication of change to recipientID and returns immediately.
func (d *Dispatcher) Notify(ctx context.Context, recipientID string, change domain.StatusChange) {
	if recipientID == "" {
		d.log.Debug("Skipping notification without recipient",
			zap.String("shipment_id", change.ShipmentID),
			zap.String("waybill", change.Waybill),
		)
		return
	}

	n := domain.NewNotification(recipientID, change)

	// The request context ends with the webhook response; keep its values only.
	base := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("Notification publisher panicked",
					zap.Any("panic", r),
					zap.String("waybill", change.Waybill),
				)
			}
		}()

		pubCtx, cancel := context.WithTimeout(base, d.timeout)
		defer cancel()

		if err := d.publisher.Publish(pubCtx, n); err != nil {
			d.log.Warn("Failed to publish status change",
				zap.String("recipient_id", recipientID),
				zap.String("shipment_id", change.ShipmentID),
				zap.String("waybill", change.Waybill),
				zap.String("new_status", change.NewStatus),
				zap.Error(err),
			)
			return
		}

		d.log.Debug("Published status change",
			zap.String("recipient_id", recipientID),
			zap.String("waybill", change.Waybill),
			zap.String("new_status", change.NewStatus),
		)
	}()
}

// Wait blocks until every scheduled publication has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Drain waits for in-flight publications or until ctx is done.
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
