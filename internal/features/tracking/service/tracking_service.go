package service

import (
	"context"
	"errors"
	"fmt"

	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/ports"
)

// ErrTrackingNotFound is returned when nothing is known about a waybill.
var ErrTrackingNotFound = errors.New("tracking not found")

// TrackingView is the read model of one waybill.
type TrackingView struct {
	// Tracking is the projection, nil while no event has matched a shipment.
	Tracking *domain.ShadowTrackingRecord `json:"tracking"`
	// Events is the waybill's event ledger in carrier time order.
	Events []domain.TrackingEvent `json:"events"`
}

// TrackingService serves tracking reads from the projection and the ledger.
type TrackingService struct {
	store ports.Store
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(store ports.Store) *TrackingService {
	return &TrackingService{
		store: store,
	}
}

// GetTracking returns the projection and events recorded for waybill.
func (s *TrackingService) GetTracking(ctx context.Context, waybill string) (*TrackingView, error) {
	repos := s.store.Repositories()

	shadow, err := repos.Shadows().FindByWaybill(ctx, waybill)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking: %w", err)
	}

	events, err := repos.Events().ListByWaybill(ctx, waybill)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking: %w", err)
	}

	if shadow == nil && len(events) == 0 {
		return nil, ErrTrackingNotFound
	}

	return &TrackingView{
		Tracking: shadow,
		Events:   events,
	}, nil
}
