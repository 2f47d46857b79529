package ports

import (
	"context"

	"shipment-reconciler/internal/features/notifications/domain"
)

// Publisher delivers a notification over one channel.
type Publisher interface {
	// Publish sends n. Implementations must respect ctx cancellation.
	Publish(ctx context.Context, n domain.Notification) error
}
