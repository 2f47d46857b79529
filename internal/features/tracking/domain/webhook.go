package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrMalformedPayload is returned when a webhook lacks the shipment, its
// tracking id, or a usable status object.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// Identifier and idempotency-key fields longer than these are rejected as malformed.
const (
	MaxWaybillLength   = 64
	MaxReferenceLength = 128
	MaxStatusLength    = 255
)

// WebhookPayload is the carrier's status push.
type WebhookPayload struct {
	Shipment *WebhookShipment `json:"Shipment"`
}

// WebhookShipment is the shipment sub-object of a status push.
type WebhookShipment struct {
	AWB         string         `json:"AWB"`
	ReferenceNo string         `json:"ReferenceNo"`
	NSLCode     string         `json:"NSLCode"`
	PickUpDate  string         `json:"PickUpDate"`
	Status      *WebhookStatus `json:"Status"`
}

// WebhookStatus is the status sub-object of a status push.
type WebhookStatus struct {
	Status         string `json:"Status"`
	StatusType     string `json:"StatusType"`
	StatusDateTime string `json:"StatusDateTime"`
	StatusLocation string `json:"StatusLocation"`
	Instructions   string `json:"Instructions"`
}

// carrierTimeLayouts are tried in order; naive timestamps are read as UTC.
var carrierTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCarrierTime parses the timestamp formats the carrier emits.
func ParseCarrierTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range carrierTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return normalizeTime(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized carrier timestamp %q", value)
}

// Waybill returns the trimmed tracking id, or "" when absent.
func (p WebhookPayload) Waybill() string {
	if p.Shipment == nil {
		return ""
	}
	return strings.TrimSpace(p.Shipment.AWB)
}

// ToTrackingEvent validates the payload and builds the ledger entry for it.
// raw is kept verbatim on the event.
func (p WebhookPayload) ToTrackingEvent(raw []byte, receivedAt time.Time) (TrackingEvent, error) {
	if p.Shipment == nil {
		return TrackingEvent{}, fmt.Errorf("%w: missing shipment", ErrMalformedPayload)
	}
	waybill := p.Waybill()
	if waybill == "" {
		return TrackingEvent{}, fmt.Errorf("%w: missing tracking id", ErrMalformedPayload)
	}
	if len(waybill) > MaxWaybillLength {
		return TrackingEvent{}, fmt.Errorf("%w: tracking id longer than %d bytes", ErrMalformedPayload, MaxWaybillLength)
	}
	st := p.Shipment.Status
	if st == nil || strings.TrimSpace(st.Status) == "" {
		return TrackingEvent{}, fmt.Errorf("%w: missing status for %s", ErrMalformedPayload, waybill)
	}
	if len(strings.TrimSpace(st.Status)) > MaxStatusLength {
		return TrackingEvent{}, fmt.Errorf("%w: status longer than %d bytes", ErrMalformedPayload, MaxStatusLength)
	}
	ref := strings.TrimSpace(p.Shipment.ReferenceNo)
	if len(ref) > MaxReferenceLength {
		return TrackingEvent{}, fmt.Errorf("%w: reference longer than %d bytes", ErrMalformedPayload, MaxReferenceLength)
	}
	statusTime, err := ParseCarrierTime(st.StatusDateTime)
	if err != nil {
		return TrackingEvent{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	ev := TrackingEvent{
		ID:             uuid.NewString(),
		Waybill:        waybill,
		Status:         strings.TrimSpace(st.Status),
		StatusType:     strings.ToUpper(strings.TrimSpace(st.StatusType)),
		StatusTime:     statusTime,
		StatusLocation: strings.TrimSpace(st.StatusLocation),
		Instructions:   strings.TrimSpace(st.Instructions),
		StatusCode:     strings.TrimSpace(p.Shipment.NSLCode),
		RawPayload:     string(raw),
		ReceivedAt:     receivedAt,
	}

	if ref != "" {
		ev.ReferenceID = &ref
	}
	if p.Shipment.PickUpDate != "" {
		// Pickup date is informational; an unparseable one is dropped.
		if pickup, err := ParseCarrierTime(p.Shipment.PickUpDate); err == nil {
			ev.PickupDate = &pickup
		}
	}

	return ev, nil
}
