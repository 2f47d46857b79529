package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-reconciler/internal/core/logger"
	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// ErrShipmentNotFound is returned when no shipment carries the requested waybill.
var ErrShipmentNotFound = errors.New("shipment not found")

// NDRService records merchant decisions on failed delivery attempts.
type NDRService struct {
	store ports.Store
	now   func() time.Time
	log   *zap.Logger
}

// NewNDRService creates a new NDRService.
func NewNDRService(store ports.Store) *NDRService {
	return &NDRService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		log:   logger.Named("ndr"),
	}
}

// Resolve records action against the shipment's current failed attempt. It
// takes the same row lock as webhook processing.
func (s *NDRService) Resolve(ctx context.Context, waybill string, action domain.NDRAction, remarks string) (*domain.Shipment, error) {
	if !action.IsValid() {
		return nil, domain.ErrInvalidNDRAction
	}

	var resolved *domain.Shipment
	err := s.store.Execute(ctx, func(repos ports.TxRepositories) error {
		shipment, err := repos.Shipments().FindByWaybill(ctx, waybill)
		if err != nil {
			return err
		}
		if shipment == nil {
			return ErrShipmentNotFound
		}
		if err := shipment.ResolveNDR(action, remarks, s.now()); err != nil {
			return err
		}
		if err := repos.Shipments().Save(ctx, shipment); err != nil {
			return err
		}
		resolved = shipment
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrShipmentNotFound) || errors.Is(err, domain.ErrNotInNDR) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve ndr: %w", err)
	}

	s.log.Info("NDR action recorded",
		zap.String("waybill", waybill),
		zap.String("shipment_id", resolved.ID),
		zap.String("action", string(action)),
		zap.Int("attempts", resolved.NDR.Attempts),
	)
	return resolved, nil
}
