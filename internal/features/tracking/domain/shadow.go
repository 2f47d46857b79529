package domain

import "time"

// ShadowTrackingRecord is the read-optimised tracking projection of a shipment,
// keyed by waybill. It also keeps carrier fields the shipment does not retain.
type ShadowTrackingRecord struct {
	Waybill          string          `json:"waybill"`
	ShipmentID       string          `json:"shipment_id"`
	ReferenceID      string          `json:"reference_id"`
	CurrentStatus    CanonicalStatus `json:"current_status"`
	RawStatus        string          `json:"raw_status"`
	RawStatusType    string          `json:"raw_status_type"`
	StatusCode       string          `json:"status_code,omitempty"`
	StatusLocation   string          `json:"status_location"`
	Instructions     string          `json:"instructions"`
	PickupDate       *time.Time      `json:"pickup_date,omitempty"`
	LastEventAt      time.Time       `json:"last_event_at"`
	LastTrackedAt    time.Time       `json:"last_tracked_at"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	RTODeliveredAt   *time.Time      `json:"rto_delivered_at,omitempty"`
	IsNDR            bool            `json:"is_ndr"`
	NDRAttempts      int             `json:"ndr_attempts"`
	NDRNextAttemptAt *time.Time      `json:"ndr_next_attempt_at,omitempty"`
}

// NewShadowTrackingRecord returns an empty projection for a waybill.
func NewShadowTrackingRecord(waybill string) *ShadowTrackingRecord {
	return &ShadowTrackingRecord{Waybill: waybill}
}

// Mirror copies the shipment's canonical state and counters, plus the raw
// carrier fields of the event that caused the transition.
func (r *ShadowTrackingRecord) Mirror(s *Shipment, ev TrackingEvent, now time.Time) {
	r.ShipmentID = s.ID
	r.ReferenceID = s.ReferenceID
	r.CurrentStatus = s.Status

	r.DeliveredAt = s.DeliveredAt
	r.CancelledAt = s.Carrier.CancelledAt
	r.RTODeliveredAt = s.RTODeliveredAt
	r.IsNDR = s.NDR.IsNDR
	r.NDRAttempts = s.NDR.Attempts
	r.NDRNextAttemptAt = s.NDR.NextAttemptAt

	r.RawStatus = ev.Status
	r.RawStatusType = ev.StatusType
	r.StatusCode = ev.StatusCode
	r.StatusLocation = ev.StatusLocation
	r.Instructions = ev.Instructions
	if ev.PickupDate != nil {
		r.PickupDate = ev.PickupDate
	}
	r.LastEventAt = ev.StatusTime
	r.LastTrackedAt = now
}
