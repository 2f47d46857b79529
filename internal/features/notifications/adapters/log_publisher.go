package adapters

import (
	"context"

	"shipment-reconciler/internal/core/logger"
	"shipment-reconciler/internal/features/notifications/domain"

	"go.uber.org/zap"
)

// LogPublisher writes notifications to the application log. It is the
// default channel when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{log: logger.Named("notifications.log")}
}

// Publish logs n.
func (p *LogPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.log.Info("Shipment status changed",
		zap.String("recipient_id", n.RecipientID),
		zap.String("shipment_id", n.Change.ShipmentID),
		zap.String("waybill", n.Change.Waybill),
		zap.String("old_status", n.Change.OldStatus),
		zap.String("new_status", n.Change.NewStatus),
		zap.Time("timestamp", n.Change.Timestamp),
	)
	return nil
}
