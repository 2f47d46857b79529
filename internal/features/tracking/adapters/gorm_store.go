package adapters

import (
	"context"
	"errors"
	"fmt"

	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate creates or updates the tracking tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&trackingEventModel{}, &shipmentModel{}, &shadowModel{}); err != nil {
		return fmt.Errorf("failed to migrate tracking tables: %w", err)
	}
	return nil
}

// GormStore implements ports.Store on a gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormStore) Execute(ctx context.Context, fn func(repos ports.TxRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{db: tx})
	})
}

// Repositories returns repositories bound to the root connection.
func (s *GormStore) Repositories() ports.TxRepositories {
	return &gormRepositories{db: s.db}
}

// Ping checks the database connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

type gormRepositories struct {
	db *gorm.DB
}

func (r *gormRepositories) Events() ports.TrackingEventRepository {
	return &GormTrackingEventRepository{db: r.db}
}

func (r *gormRepositories) Shipments() ports.ShipmentRepository {
	return &GormShipmentRepository{db: r.db}
}

func (r *gormRepositories) Shadows() ports.ShadowRepository {
	return &GormShadowRepository{db: r.db}
}

// GormTrackingEventRepository stores the event ledger.
type GormTrackingEventRepository struct {
	db *gorm.DB
}

// Exists reports whether an event with the given idempotency key is stored.
func (r *GormTrackingEventRepository) Exists(ctx context.Context, key domain.IdempotencyKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trackingEventModel{}).
		Where("waybill = ? AND status = ? AND status_time = ?", key.Waybill, key.Status, key.StatusTime).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up tracking event: %w", err)
	}
	return count > 0, nil
}

// Insert appends the event, returning ports.ErrDuplicateEvent when its
// idempotency key is already taken.
func (r *GormTrackingEventRepository) Insert(ctx context.Context, event *domain.TrackingEvent) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(newTrackingEventModel(event))
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ports.ErrDuplicateEvent
		}
		return fmt.Errorf("failed to insert tracking event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrDuplicateEvent
	}
	return nil
}

// MarkProcessed flags the event processed and links it to its shipment.
func (r *GormTrackingEventRepository) MarkProcessed(ctx context.Context, id string, shipmentID *string) error {
	res := r.db.WithContext(ctx).
		Model(&trackingEventModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"processed": true, "shipment_id": shipmentID})
	if res.Error != nil {
		return fmt.Errorf("failed to mark tracking event processed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tracking event %s not found", id)
	}
	return nil
}

// ListByWaybill returns the waybill's events in carrier time order.
func (r *GormTrackingEventRepository) ListByWaybill(ctx context.Context, waybill string) ([]domain.TrackingEvent, error) {
	var rows []trackingEventModel
	err := r.db.WithContext(ctx).
		Where("waybill = ?", waybill).
		Order("status_time ASC").
		Order("received_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking events: %w", err)
	}

	events := make([]domain.TrackingEvent, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toDomain())
	}
	return events, nil
}

// GormShipmentRepository stores shipments. Reads take a row lock so concurrent
// writers to the same shipment serialise; dialects without row locks ignore it.
type GormShipmentRepository struct {
	db *gorm.DB
}

// FindByReference locks and returns the shipment with the given external reference.
func (r *GormShipmentRepository) FindByReference(ctx context.Context, referenceID string) (*domain.Shipment, error) {
	if referenceID == "" {
		return nil, nil
	}
	return r.findOne(ctx, "reference_id = ?", referenceID)
}

// FindByWaybill locks and returns the shipment with the given tracking id.
func (r *GormShipmentRepository) FindByWaybill(ctx context.Context, waybill string) (*domain.Shipment, error) {
	if waybill == "" {
		return nil, nil
	}
	return r.findOne(ctx, "waybill = ?", waybill)
}

func (r *GormShipmentRepository) findOne(ctx context.Context, query string, arg any) (*domain.Shipment, error) {
	var m shipmentModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(query, arg).
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	return m.toDomain(), nil
}

// Save inserts or updates the shipment.
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *domain.Shipment) error {
	if err := r.db.WithContext(ctx).Save(newShipmentModel(shipment)).Error; err != nil {
		return fmt.Errorf("failed to save shipment: %w", err)
	}
	return nil
}

// GormShadowRepository stores the tracking projection.
type GormShadowRepository struct {
	db *gorm.DB
}

// FindByWaybill returns the projection, or nil when absent.
func (r *GormShadowRepository) FindByWaybill(ctx context.Context, waybill string) (*domain.ShadowTrackingRecord, error) {
	var m shadowModel
	err := r.db.WithContext(ctx).Where("waybill = ?", waybill).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load shadow record: %w", err)
	}
	return m.toDomain(), nil
}

// Save upserts the projection by waybill.
func (r *GormShadowRepository) Save(ctx context.Context, record *domain.ShadowTrackingRecord) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "waybill"}},
			UpdateAll: true,
		}).
		Create(newShadowModel(record)).Error
	if err != nil {
		return fmt.Errorf("failed to save shadow record: %w", err)
	}
	return nil
}

var (
	_ ports.Store                   = (*GormStore)(nil)
	_ ports.TxRepositories          = (*gormRepositories)(nil)
	_ ports.TrackingEventRepository = (*GormTrackingEventRepository)(nil)
	_ ports.ShipmentRepository      = (*GormShipmentRepository)(nil)
	_ ports.ShadowRepository        = (*GormShadowRepository)(nil)
)
