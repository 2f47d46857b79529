package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		statusType string
		expected   CanonicalStatus
		known      bool
	}{
		// Same text, different type codes.
		{name: "Dispatched pickup request", status: "Dispatched", statusType: "PP", expected: StatusOutForDelivery, known: true},
		{name: "Dispatched without type", status: "Dispatched", statusType: "", expected: StatusOutForDelivery, known: true},
		{name: "Dispatched return", status: "Dispatched", statusType: "RT", expected: StatusRTOInTransit, known: true},
		{name: "Dispatched reverse", status: "Dispatched", statusType: "PU", expected: StatusOutForDelivery, known: true},

		{name: "Pickup scheduled", status: "Scheduled", statusType: "PP", expected: StatusPickupsManifests, known: true},
		{name: "Pickup unknown text defaults to awaiting", status: "Agent Assigned", statusType: "PP", expected: StatusPickupsManifests, known: true},
		{name: "Out for pickup", status: "Out for Pickup", statusType: "pp", expected: StatusOutForDelivery, known: true},

		{name: "Reverse pending", status: "Pending", statusType: "PU", expected: StatusInTransit, known: true},
		{name: "Reverse unknown defaults to transit", status: "Bagged", statusType: "PU", expected: StatusInTransit, known: true},

		{name: "Return in transit", status: "In Transit", statusType: "RT", expected: StatusRTOInTransit, known: true},
		{name: "Return pending", status: "Pending", statusType: "RT", expected: StatusRTOInTransit, known: true},

		{name: "Cancelled type wins", status: "In Transit", statusType: "CN", expected: StatusCancelled, known: true},

		{name: "Forward delivered", status: "Delivered", statusType: "DL", expected: StatusDelivered, known: true},
		{name: "RTO delivered", status: "RTO", statusType: "DL", expected: StatusRTODelivered, known: true},
		{name: "Returned delivered", status: "Returned to origin", statusType: "DL", expected: StatusRTODelivered, known: true},
		{name: "Reverse delivered to origin", status: "DTO", statusType: "DL", expected: StatusDelivered, known: true},

		// Forward table, case-insensitive.
		{name: "Manifested", status: "Manifested", statusType: "UD", expected: StatusPickupsManifests, known: true},
		{name: "In transit mixed case", status: "  IN   transit ", statusType: "UD", expected: StatusInTransit, known: true},
		{name: "Out for delivery", status: "Out For Delivery", statusType: "", expected: StatusOutForDelivery, known: true},
		{name: "Delivered no type", status: "delivered", statusType: "", expected: StatusDelivered, known: true},
		{name: "RTO initiated", status: "RTO Initiated", statusType: "UD", expected: StatusRTOInTransit, known: true},
		{name: "Canceled spelling", status: "Canceled", statusType: "", expected: StatusCancelled, known: true},
		{name: "NDR reason", status: "Consignee Unavailable", statusType: "UD", expected: StatusNDR, known: true},
		{name: "NDR door locked", status: "Door Locked", statusType: "", expected: StatusNDR, known: true},
		{name: "Damaged", status: "Damaged", statusType: "", expected: StatusLost, known: true},

		// Coarse type fallback.
		{name: "Lost type unknown text", status: "Untraceable", statusType: "LT", expected: StatusLost, known: true},
		{name: "Forward type unknown text", status: "Bagging", statusType: "UD", expected: StatusInTransit, known: true},

		// Both unknown.
		{name: "Unknown text and type", status: "Teleported", statusType: "ZZ", expected: StatusInTransit, known: false},
		{name: "Empty inputs", status: "", statusType: "", expected: StatusInTransit, known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, known := MapStatus(tt.status, tt.statusType)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestMapStatus_Deterministic(t *testing.T) {
	first, firstKnown := MapStatus("Dispatched", "PP")
	for i := 0; i < 10; i++ {
		status, known := MapStatus("Dispatched", "PP")
		assert.Equal(t, first, status)
		assert.Equal(t, firstKnown, known)
	}
}

func TestMapStatus_AlwaysCanonical(t *testing.T) {
	inputs := []string{"", "Dispatched", "RTO", "Lost", "???", "Delivered"}
	types := []string{"", "UD", "PP", "PU", "RT", "CN", "DL", "LT", "XX"}
	for _, s := range inputs {
		for _, st := range types {
			status, _ := MapStatus(s, st)
			assert.True(t, status.IsValid(), "MapStatus(%q, %q) = %q", s, st, status)
		}
	}
}

func TestCanonicalStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusRTODelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusLost.IsTerminal())
	assert.False(t, StatusNDR.IsTerminal())
	assert.False(t, CanonicalStatus("").IsTerminal())
}
