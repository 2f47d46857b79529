package adapters

import (
	"time"

	"shipment-reconciler/internal/features/tracking/domain"
)

// trackingEventModel is the ledger row. The composite unique index is the
// authoritative idempotency guard.
type trackingEventModel struct {
	ID             string     `gorm:"primaryKey;size:36"`
	Waybill        string     `gorm:"size:64;not null;uniqueIndex:idx_tracking_events_key,priority:1"`
	Status         string     `gorm:"type:text;not null;uniqueIndex:idx_tracking_events_key,priority:2"`
	StatusTime     time.Time  `gorm:"not null;uniqueIndex:idx_tracking_events_key,priority:3"`
	ReferenceID    *string    `gorm:"size:128;index"`
	StatusType     string     `gorm:"type:text"`
	StatusLocation string     `gorm:"type:text"`
	Instructions   string     `gorm:"type:text"`
	StatusCode     string     `gorm:"type:text"`
	PickupDate     *time.Time `gorm:"column:pickup_date"`
	Processed      bool       `gorm:"not null;default:false"`
	ShipmentID     *string    `gorm:"size:36;index"`
	RawPayload     string     `gorm:"type:text"`
	ReceivedAt     time.Time  `gorm:"not null"`
}

func (trackingEventModel) TableName() string { return "tracking_events" }

func newTrackingEventModel(e *domain.TrackingEvent) *trackingEventModel {
	return &trackingEventModel{
		ID:             e.ID,
		Waybill:        e.Waybill,
		Status:         e.Status,
		StatusTime:     e.StatusTime,
		ReferenceID:    e.ReferenceID,
		StatusType:     e.StatusType,
		StatusLocation: e.StatusLocation,
		Instructions:   e.Instructions,
		StatusCode:     e.StatusCode,
		PickupDate:     e.PickupDate,
		Processed:      e.Processed,
		ShipmentID:     e.ShipmentID,
		RawPayload:     e.RawPayload,
		ReceivedAt:     e.ReceivedAt,
	}
}

func (m *trackingEventModel) toDomain() domain.TrackingEvent {
	return domain.TrackingEvent{
		ID:             m.ID,
		Waybill:        m.Waybill,
		ReferenceID:    m.ReferenceID,
		Status:         m.Status,
		StatusType:     m.StatusType,
		StatusTime:     m.StatusTime.UTC(),
		StatusLocation: m.StatusLocation,
		Instructions:   m.Instructions,
		StatusCode:     m.StatusCode,
		PickupDate:     utcPtr(m.PickupDate),
		Processed:      m.Processed,
		ShipmentID:     m.ShipmentID,
		RawPayload:     m.RawPayload,
		ReceivedAt:     m.ReceivedAt.UTC(),
	}
}

type ndrColumns struct {
	IsNDR             bool
	Attempts          int
	LastReason        string `gorm:"type:text"`
	LastAttemptAt     *time.Time
	NextAttemptAt     *time.Time
	ResolutionAction  string                 `gorm:"size:32"`
	ResolutionHistory []domain.NDRResolution `gorm:"type:text;serializer:json"`
}

type carrierColumns struct {
	CurrentStatus      string `gorm:"type:text"`
	CurrentStatusType  string `gorm:"type:text"`
	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text"`
}

type shipmentModel struct {
	ID             string                      `gorm:"primaryKey;size:36"`
	OwnerID        string                      `gorm:"size:64;index"`
	ReferenceID    string                      `gorm:"size:128;index"`
	Waybill        string                      `gorm:"size:64;index"`
	Status         string                      `gorm:"size:32;not null"`
	StatusHistory  []domain.StatusHistoryEntry `gorm:"type:text;serializer:json"`
	DeliveredAt    *time.Time
	RTODeliveredAt *time.Time
	NDR            ndrColumns     `gorm:"embedded;embeddedPrefix:ndr_"`
	Carrier        carrierColumns `gorm:"embedded;embeddedPrefix:carrier_"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (shipmentModel) TableName() string { return "shipments" }

func newShipmentModel(s *domain.Shipment) *shipmentModel {
	return &shipmentModel{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		ReferenceID:    s.ReferenceID,
		Waybill:        s.Waybill,
		Status:         string(s.Status),
		StatusHistory:  s.StatusHistory,
		DeliveredAt:    s.DeliveredAt,
		RTODeliveredAt: s.RTODeliveredAt,
		NDR: ndrColumns{
			IsNDR:             s.NDR.IsNDR,
			Attempts:          s.NDR.Attempts,
			LastReason:        s.NDR.LastReason,
			LastAttemptAt:     s.NDR.LastAttemptAt,
			NextAttemptAt:     s.NDR.NextAttemptAt,
			ResolutionAction:  string(s.NDR.ResolutionAction),
			ResolutionHistory: s.NDR.ResolutionHistory,
		},
		Carrier: carrierColumns{
			CurrentStatus:      s.Carrier.CurrentStatus,
			CurrentStatusType:  s.Carrier.CurrentStatusType,
			CancelledAt:        s.Carrier.CancelledAt,
			CancellationReason: s.Carrier.CancellationReason,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *shipmentModel) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		ReferenceID:    m.ReferenceID,
		Waybill:        m.Waybill,
		Status:         domain.CanonicalStatus(m.Status),
		StatusHistory:  m.StatusHistory,
		DeliveredAt:    utcPtr(m.DeliveredAt),
		RTODeliveredAt: utcPtr(m.RTODeliveredAt),
		NDR: domain.NDRInfo{
			IsNDR:             m.NDR.IsNDR,
			Attempts:          m.NDR.Attempts,
			LastReason:        m.NDR.LastReason,
			LastAttemptAt:     utcPtr(m.NDR.LastAttemptAt),
			NextAttemptAt:     utcPtr(m.NDR.NextAttemptAt),
			ResolutionAction:  domain.NDRAction(m.NDR.ResolutionAction),
			ResolutionHistory: m.NDR.ResolutionHistory,
		},
		Carrier: domain.CarrierData{
			CurrentStatus:      m.Carrier.CurrentStatus,
			CurrentStatusType:  m.Carrier.CurrentStatusType,
			CancelledAt:        utcPtr(m.Carrier.CancelledAt),
			CancellationReason: m.Carrier.CancellationReason,
		},
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type shadowModel struct {
	Waybill          string `gorm:"primaryKey;size:64"`
	ShipmentID       string `gorm:"size:36;index"`
	ReferenceID      string `gorm:"size:128"`
	CurrentStatus    string `gorm:"size:32"`
	RawStatus        string `gorm:"type:text"`
	RawStatusType    string `gorm:"type:text"`
	StatusCode       string `gorm:"type:text"`
	StatusLocation   string `gorm:"type:text"`
	Instructions     string `gorm:"type:text"`
	PickupDate       *time.Time
	LastEventAt      time.Time
	LastTrackedAt    time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	RTODeliveredAt   *time.Time
	IsNDR            bool
	NDRAttempts      int
	NDRNextAttemptAt *time.Time
}

func (shadowModel) TableName() string { return "shadow_tracking_records" }

func newShadowModel(r *domain.ShadowTrackingRecord) *shadowModel {
	return &shadowModel{
		Waybill:          r.Waybill,
		ShipmentID:       r.ShipmentID,
		ReferenceID:      r.ReferenceID,
		CurrentStatus:    string(r.CurrentStatus),
		RawStatus:        r.RawStatus,
		RawStatusType:    r.RawStatusType,
		StatusCode:       r.StatusCode,
		StatusLocation:   r.StatusLocation,
		Instructions:     r.Instructions,
		PickupDate:       r.PickupDate,
		LastEventAt:      r.LastEventAt,
		LastTrackedAt:    r.LastTrackedAt,
		DeliveredAt:      r.DeliveredAt,
		CancelledAt:      r.CancelledAt,
		RTODeliveredAt:   r.RTODeliveredAt,
		IsNDR:            r.IsNDR,
		NDRAttempts:      r.NDRAttempts,
		NDRNextAttemptAt: r.NDRNextAttemptAt,
	}
}

func (m *shadowModel) toDomain() *domain.ShadowTrackingRecord {
	return &domain.ShadowTrackingRecord{
		Waybill:          m.Waybill,
		ShipmentID:       m.ShipmentID,
		ReferenceID:      m.ReferenceID,
		CurrentStatus:    domain.CanonicalStatus(m.CurrentStatus),
		RawStatus:        m.RawStatus,
		RawStatusType:    m.RawStatusType,
		StatusCode:       m.StatusCode,
		StatusLocation:   m.StatusLocation,
		Instructions:     m.Instructions,
		PickupDate:       utcPtr(m.PickupDate),
		LastEventAt:      m.LastEventAt.UTC(),
		LastTrackedAt:    m.LastTrackedAt.UTC(),
		DeliveredAt:      utcPtr(m.DeliveredAt),
		CancelledAt:      utcPtr(m.CancelledAt),
		RTODeliveredAt:   utcPtr(m.RTODeliveredAt),
		IsNDR:            m.IsNDR,
		NDRAttempts:      m.NDRAttempts,
		NDRNextAttemptAt: utcPtr(m.NDRNextAttemptAt),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
