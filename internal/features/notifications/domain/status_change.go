package domain

import "time"

// EventStatusChanged is the event name carried by every status notification.
const EventStatusChanged = "shipment.status_changed"

// StatusChange describes one applied shipment transition.
type StatusChange struct {
	ShipmentID  string    `json:"shipment_id"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Waybill     string    `json:"waybill"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Location    string    `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notification is a status change addressed to one recipient.
type Notification struct {
	Event       string       `json:"event"`
	RecipientID string       `json:"recipient_id"`
	Change      StatusChange `json:"data"`
}

// NewNotification addresses change to recipientID.
func NewNotification(recipientID string, change StatusChange) Notification {
	return Notification{
		Event:       EventStatusChanged,
		RecipientID: recipientID,
		Change:      change,
	}
}
