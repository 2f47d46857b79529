package domain

// CanonicalStatus is the carrier-agnostic shipment lifecycle state.
type CanonicalStatus string

const (
	// StatusPickupsManifests indicates the shipment is manifested and awaiting pickup.
	StatusPickupsManifests CanonicalStatus = "pickups_manifests"
	// StatusInTransit indicates the shipment is moving through the carrier network.
	StatusInTransit CanonicalStatus = "in_transit"
	// StatusOutForDelivery indicates a field agent is out to deliver (or collect).
	StatusOutForDelivery CanonicalStatus = "out_for_delivery"
	// StatusDelivered indicates the shipment reached its recipient.
	StatusDelivered CanonicalStatus = "delivered"
	// StatusNDR indicates a failed delivery attempt awaiting resolution.
	StatusNDR CanonicalStatus = "ndr"
	// StatusRTOInTransit indicates the shipment is returning to origin.
	StatusRTOInTransit CanonicalStatus = "rto_in_transit"
	// StatusRTODelivered indicates the shipment was returned to origin.
	StatusRTODelivered CanonicalStatus = "rto_delivered"
	// StatusCancelled indicates the shipment was cancelled.
	StatusCancelled CanonicalStatus = "cancelled"
	// StatusLost indicates the carrier reported the shipment lost or damaged.
	StatusLost CanonicalStatus = "lost"
)

// IsTerminal reports whether carrier-driven transitions out of s are refused.
func (s CanonicalStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusRTODelivered, StatusCancelled:
		return true
	}
	return false
}

// IsValid reports whether s is one of the known canonical states.
func (s CanonicalStatus) IsValid() bool {
	switch s {
	case StatusPickupsManifests, StatusInTransit, StatusOutForDelivery, StatusDelivered,
		StatusNDR, StatusRTOInTransit, StatusRTODelivered, StatusCancelled, StatusLost:
		return true
	}
	return false
}
