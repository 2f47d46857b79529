package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"shipment-reconciler/internal/core/config"
	"shipment-reconciler/internal/core/database"
	notifications "shipment-reconciler/internal/features/notifications/domain"
	"shipment-reconciler/internal/features/tracking/adapters"
	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *adapters.GormStore {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, adapters.AutoMigrate(db.DB))
	return adapters.NewGormStore(db.DB)
}

func seedShipment(t *testing.T, store ports.Store, s *domain.Shipment) {
	t.Helper()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = fixedNow.Add(-72 * time.Hour)
		s.UpdatedAt = s.CreatedAt
	}
	require.NoError(t, store.Repositories().Shipments().Save(context.Background(), s))
}

func loadShipment(t *testing.T, store ports.Store, waybill string) *domain.Shipment {
	t.Helper()
	s, err := store.Repositories().Shipments().FindByWaybill(context.Background(), waybill)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

// webhook builds a carrier payload and its raw body.
func webhook(t *testing.T, awb, ref, status, statusType, at string) (domain.WebhookPayload, []byte) {
	t.Helper()
	payload := domain.WebhookPayload{Shipment: &domain.WebhookShipment{
		AWB:         awb,
		ReferenceNo: ref,
		Status: &domain.WebhookStatus{
			Status:         status,
			StatusType:     statusType,
			StatusDateTime: at,
			StatusLocation: "Pune_Kharadi_D",
		},
	}}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return payload, raw
}

// recordingNotifier captures notifications synchronously.
type recordingNotifier struct {
	mu      sync.Mutex
	changes []notifications.StatusChange
	owners  []string
}

func (n *recordingNotifier) Notify(_ context.Context, recipientID string, change notifications.StatusChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.owners = append(n.owners, recipientID)
	n.changes = append(n.changes, change)
}

func (n *recordingNotifier) all() []notifications.StatusChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifications.StatusChange(nil), n.changes...)
}

// mockEventRepository is a testify mock of ports.TrackingEventRepository.
type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Exists(ctx context.Context, key domain.IdempotencyKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventRepository) Insert(ctx context.Context, event *domain.TrackingEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepository) MarkProcessed(ctx context.Context, id string, shipmentID *string) error {
	return m.Called(ctx, id, shipmentID).Error(0)
}

func (m *mockEventRepository) ListByWaybill(ctx context.Context, waybill string) ([]domain.TrackingEvent, error) {
	args := m.Called(ctx, waybill)
	events, _ := args.Get(0).([]domain.TrackingEvent)
	return events, args.Error(1)
}

// mockSeenCache is a testify mock of ports.SeenCache.
type mockSeenCache struct {
	mock.Mock
}

func (m *mockSeenCache) Seen(ctx context.Context, key domain.IdempotencyKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockSeenCache) Remember(ctx context.Context, key domain.IdempotencyKey) error {
	return m.Called(ctx, key).Error(0)
}

// failingStore fails every transaction.
type failingStore struct {
	ports.Store
	err error
}

func (s *failingStore) Execute(context.Context, func(ports.TxRepositories) error) error {
	return s.err
}

// shadowFailingStore runs real transactions whose projection writes fail.
type shadowFailingStore struct {
	ports.Store
	err error
}

func (s *shadowFailingStore) Execute(ctx context.Context, fn func(ports.TxRepositories) error) error {
	return s.Store.Execute(ctx, func(repos ports.TxRepositories) error {
		return fn(shadowFailingRepositories{TxRepositories: repos, err: s.err})
	})
}

type shadowFailingRepositories struct {
	ports.TxRepositories
	err error
}

func (r shadowFailingRepositories) Shadows() ports.ShadowRepository {
	return failingShadowRepository{ShadowRepository: r.TxRepositories.Shadows(), err: r.err}
}

type failingShadowRepository struct {
	ports.ShadowRepository
	err error
}

func (r failingShadowRepository) Save(context.Context, *domain.ShadowTrackingRecord) error {
	return r.err
}
