package domain

import (
	"strings"
	"unicode"
)

// Carrier status type codes. The same status text means different things under
// different type codes, so the type is evaluated first.
const (
	StatusTypeForward     = "UD"
	StatusTypePickup      = "PP"
	StatusTypePickedUp    = "PU"
	StatusTypeReturn      = "RT"
	StatusTypeCancelled   = "CN"
	StatusTypeDelivered   = "DL"
	StatusTypeLost        = "LT"
	defaultFallbackStatus = StatusInTransit
)

// forwardStatuses is the direct lookup keyed by normalized vendor status text.
var forwardStatuses = map[string]CanonicalStatus{
	"manifested":       StatusPickupsManifests,
	"not picked":       StatusPickupsManifests,
	"pickup scheduled": StatusPickupsManifests,
	"scheduled":        StatusPickupsManifests,
	"open":             StatusPickupsManifests,

	"in transit":             StatusInTransit,
	"pending":                StatusInTransit,
	"picked up":              StatusInTransit,
	"reached at destination": StatusInTransit,

	"dispatched":       StatusOutForDelivery,
	"out for delivery": StatusOutForDelivery,

	"delivered": StatusDelivered,

	"rto":            StatusRTOInTransit,
	"rto initiated":  StatusRTOInTransit,
	"rto in transit": StatusRTOInTransit,
	"rto pending":    StatusRTOInTransit,
	"rto dispatched": StatusRTOInTransit,
	"rto delivered":  StatusRTODelivered,
	"returned":       StatusRTODelivered,

	"cancelled":             StatusCancelled,
	"canceled":              StatusCancelled,
	"shipment cancelled":    StatusCancelled,
	"cancelled by customer": StatusCancelled,

	"undelivered":                 StatusNDR,
	"ndr":                         StatusNDR,
	"consignee unavailable":       StatusNDR,
	"consignee not available":     StatusNDR,
	"customer refused":            StatusNDR,
	"consignee refused to accept": StatusNDR,
	"address incorrect":           StatusNDR,
	"incomplete address":          StatusNDR,
	"door locked":                 StatusNDR,
	"cod amount not ready":        StatusNDR,
	"delivery rescheduled":        StatusNDR,

	"lost":             StatusLost,
	"shipment lost":    StatusLost,
	"damaged":          StatusLost,
	"shipment damaged": StatusLost,
	"destroyed":        StatusLost,
}

// typeDefaults is the coarse fallback used when the text is not recognized.
var typeDefaults = map[string]CanonicalStatus{
	StatusTypeForward:   StatusInTransit,
	StatusTypePickup:    StatusPickupsManifests,
	StatusTypePickedUp:  StatusInTransit,
	StatusTypeReturn:    StatusRTOInTransit,
	StatusTypeCancelled: StatusCancelled,
	StatusTypeDelivered: StatusDelivered,
	StatusTypeLost:      StatusLost,
}

// MapStatus translates a carrier status and its type code into a canonical status.
// The boolean is false when neither input was recognized and the in-transit
// fallback was used; callers should log it. MapStatus never fails.
func MapStatus(vendorStatus, vendorStatusType string) (CanonicalStatus, bool) {
	text := normalizeStatusText(vendorStatus)
	statusType := strings.ToUpper(strings.TrimSpace(vendorStatusType))

	if status, ok := mapByType(text, statusType); ok {
		return status, true
	}

	if status, ok := forwardStatuses[text]; ok {
		return status, true
	}

	if status, ok := typeDefaults[statusType]; ok {
		return status, true
	}

	return defaultFallbackStatus, false
}

// mapByType resolves the type codes whose vocabulary overlaps the forward table.
func mapByType(text, statusType string) (CanonicalStatus, bool) {
	switch statusType {
	case StatusTypePickup:
		switch text {
		case "dispatched", "out for pickup":
			return StatusOutForDelivery, true
		}
		return StatusPickupsManifests, true

	case StatusTypePickedUp:
		switch text {
		case "dispatched", "out for delivery":
			return StatusOutForDelivery, true
		}
		return StatusInTransit, true

	case StatusTypeReturn:
		return StatusRTOInTransit, true

	case StatusTypeCancelled:
		return StatusCancelled, true

	case StatusTypeDelivered:
		if hasReturnMarker(text) {
			return StatusRTODelivered, true
		}
		// DTO (reverse pickup delivered back to the merchant) is a delivery too.
		return StatusDelivered, true
	}
	return "", false
}

// hasReturnMarker reports whether the text describes a return-to-origin delivery.
func hasReturnMarker(text string) bool {
	for _, token := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if token == "rto" || token == "returned" {
			return true
		}
	}
	return false
}

func normalizeStatusText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
