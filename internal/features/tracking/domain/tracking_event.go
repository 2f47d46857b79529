package domain

import (
	"fmt"
	"time"
)

// TrackingEvent is one inbound carrier status notification. It is append-only:
// after insert only Processed and ShipmentID change.
type TrackingEvent struct {
	// ID is the ledger identity of the event.
	ID string `json:"id"`
	// Waybill is the carrier tracking id.
	Waybill string `json:"waybill"`
	// ReferenceID is the merchant's external reference, when the carrier sent one.
	ReferenceID *string `json:"reference_id,omitempty"`
	// Status is the raw carrier status text.
	Status string `json:"status"`
	// StatusType is the raw carrier status type code.
	StatusType string `json:"status_type"`
	// StatusTime is the carrier-supplied status timestamp (UTC, microsecond precision).
	StatusTime time.Time `json:"status_time"`
	// StatusLocation is where the carrier recorded the status.
	StatusLocation string `json:"status_location"`
	// Instructions is the carrier's free-text remark.
	Instructions string `json:"instructions"`
	// StatusCode is the carrier's detailed status code (NSL code).
	StatusCode string `json:"status_code,omitempty"`
	// PickupDate is the carrier's pickup date, when present.
	PickupDate *time.Time `json:"pickup_date,omitempty"`
	// Processed is set once the event has been evaluated against its shipment.
	Processed bool `json:"processed"`
	// ShipmentID links the event to its owning shipment once resolved.
	ShipmentID *string `json:"shipment_id,omitempty"`
	// RawPayload is the verbatim webhook body.
	RawPayload string `json:"-"`
	// ReceivedAt is when the event was first recorded.
	ReceivedAt time.Time `json:"received_at"`
}

// IdempotencyKey identifies a carrier event across redeliveries.
type IdempotencyKey struct {
	Waybill    string
	Status     string
	StatusTime time.Time
}

// Key returns the idempotency key of the event.
func (e TrackingEvent) Key() IdempotencyKey {
	return IdempotencyKey{
		Waybill:    e.Waybill,
		Status:     e.Status,
		StatusTime: e.StatusTime,
	}
}

// String renders the key for caches and logs.
func (k IdempotencyKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.Waybill, k.Status, k.StatusTime.UTC().Format(time.RFC3339Nano))
}

// Remarks returns the most descriptive text of the event.
func (e TrackingEvent) Remarks() string {
	if e.Instructions != "" {
		return e.Instructions
	}
	return e.Status
}

// normalizeTime makes carrier timestamps comparable across storage backends.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
