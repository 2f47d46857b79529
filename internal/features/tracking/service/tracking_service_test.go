package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipment-reconciler/internal/core/logger"
	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrackingService_GetTracking_Success verifies the projection and ledger are returned together.
func TestTrackingService_GetTracking_Success(t *testing.T) {
	logger.Init("development", "error")
	store := newTestStore(t)
	seedShipment(t, store, &domain.Shipment{
		ID: "ship-1", OwnerID: "merchant-1", Waybill: "AWB1", Status: domain.StatusInTransit,
	})
	reconciler := NewReconciliationService(store, NewDeduplicator(store.Repositories().Events(), nil), nil,
		WithClock(func() time.Time { return fixedNow }))

	for _, at := range []string{"2025-03-10T10:00:00", "2025-03-10T08:00:00"} {
		payload, raw := webhook(t, "AWB1", "", "Dispatched", "UD", at)
		_, err := reconciler.Process(context.Background(), payload, raw)
		require.NoError(t, err)
	}

	view, err := NewTrackingService(store).GetTracking(context.Background(), "AWB1")
	require.NoError(t, err)
	require.NotNil(t, view.Tracking)
	assert.Equal(t, domain.StatusOutForDelivery, view.Tracking.CurrentStatus)
	require.Len(t, view.Events, 2)
	assert.True(t, view.Events[0].StatusTime.Before(view.Events[1].StatusTime))
}

// TestTrackingService_GetTracking_EventsOnly verifies unmatched waybills still expose their ledger.
func TestTrackingService_GetTracking_EventsOnly(t *testing.T) {
	logger.Init("development", "error")
	store := newTestStore(t)
	reconciler := NewReconciliationService(store, NewDeduplicator(store.Repositories().Events(), nil), nil)

	payload, raw := webhook(t, "AWB2", "", "Manifested", "UD", "2025-03-10T08:00:00")
	_, err := reconciler.Process(context.Background(), payload, raw)
	require.NoError(t, err)

	view, err := NewTrackingService(store).GetTracking(context.Background(), "AWB2")
	require.NoError(t, err)
	assert.Nil(t, view.Tracking)
	assert.Len(t, view.Events, 1)
}

// TestTrackingService_GetTracking_NotFound verifies unknown waybills.
func TestTrackingService_GetTracking_NotFound(t *testing.T) {
	store := newTestStore(t)

	view, err := NewTrackingService(store).GetTracking(context.Background(), "nope")

	assert.Nil(t, view)
	assert.ErrorIs(t, err, ErrTrackingNotFound)
}

// errRepositories fails every read.
type errRepositories struct {
	ports.TxRepositories
}

type errShadowRepository struct {
	ports.ShadowRepository
}

func (errShadowRepository) FindByWaybill(context.Context, string) (*domain.ShadowTrackingRecord, error) {
	return nil, errors.New("db down")
}

func (errRepositories) Shadows() ports.ShadowRepository { return errShadowRepository{} }

type errStore struct {
	ports.Store
}

func (errStore) Repositories() ports.TxRepositories { return errRepositories{} }

// TestTrackingService_GetTracking_StoreError verifies read failures propagate.
func TestTrackingService_GetTracking_StoreError(t *testing.T) {
	_, err := NewTrackingService(errStore{}).GetTracking(context.Background(), "AWB1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get tracking")
}
