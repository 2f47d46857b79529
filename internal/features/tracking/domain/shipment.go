package domain

import (
	"time"
)

// StatusHistoryEntry is one applied transition in a shipment's history.
type StatusHistoryEntry struct {
	Status    CanonicalStatus `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Location  string          `json:"location"`
	Remarks   string          `json:"remarks"`
}

// NDRInfo tracks failed delivery attempts. The zero value means "never NDR".
type NDRInfo struct {
	IsNDR             bool            `json:"is_ndr"`
	Attempts          int             `json:"attempts"`
	LastReason        string          `json:"last_reason"`
	LastAttemptAt     *time.Time      `json:"last_attempt_at,omitempty"`
	NextAttemptAt     *time.Time      `json:"next_attempt_at,omitempty"`
	ResolutionAction  NDRAction       `json:"resolution_action,omitempty"`
	ResolutionHistory []NDRResolution `json:"resolution_history"`
}

// CarrierData holds the raw carrier view retained on the shipment.
type CarrierData struct {
	CurrentStatus      string     `json:"current_status"`
	CurrentStatusType  string     `json:"current_status_type"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
}

// Shipment is the primary business record of one shipment.
type Shipment struct {
	ID             string               `json:"id"`
	OwnerID        string               `json:"owner_id"`
	ReferenceID    string               `json:"reference_id"`
	Waybill        string               `json:"waybill"`
	Status         CanonicalStatus      `json:"status"`
	StatusHistory  []StatusHistoryEntry `json:"status_history"`
	DeliveredAt    *time.Time           `json:"delivered_at,omitempty"`
	RTODeliveredAt *time.Time           `json:"rto_delivered_at,omitempty"`
	NDR            NDRInfo              `json:"ndr_info"`
	Carrier        CarrierData          `json:"carrier_data"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NDRPolicy controls how failed delivery attempts are rescheduled.
type NDRPolicy struct {
	MaxAttempts int
	RetryAfter  time.Duration
}

// DefaultNDRPolicy retries the next day, up to three attempts.
var DefaultNDRPolicy = NDRPolicy{MaxAttempts: 3, RetryAfter: 24 * time.Hour}

// Apply performs an applied transition on the shipment: status, effect intents
// and one history entry. Non-applied transitions leave the shipment untouched.
func (s *Shipment) Apply(t Transition, ev TrackingEvent, now time.Time, policy NDRPolicy) {
	if !t.Applied() {
		return
	}

	s.Status = t.To
	s.Carrier.CurrentStatus = ev.Status
	s.Carrier.CurrentStatusType = ev.StatusType

	for _, effect := range t.Effects {
		switch effect {
		case EffectRecordDelivered:
			s.DeliveredAt = timePtr(now)
		case EffectIncrementNDR:
			s.recordNDRAttempt(ev, now, policy)
		case EffectClearNDR:
			s.NDR.IsNDR = false
		case EffectRecordRTODelivered:
			s.RTODeliveredAt = timePtr(now)
		case EffectRecordCancelled:
			s.Carrier.CancelledAt = timePtr(now)
			s.Carrier.CancellationReason = ev.Remarks()
		case EffectMarkLost:
		}
	}

	s.StatusHistory = append(s.StatusHistory, StatusHistoryEntry{
		Status:    t.To,
		Timestamp: ev.StatusTime,
		Location:  ev.StatusLocation,
		Remarks:   ev.Remarks(),
	})
	s.UpdatedAt = now
}

func (s *Shipment) recordNDRAttempt(ev TrackingEvent, now time.Time, policy NDRPolicy) {
	s.NDR.IsNDR = true
	s.NDR.Attempts++
	s.NDR.LastReason = ev.Remarks()

	attemptAt := ev.StatusTime
	if attemptAt.IsZero() {
		attemptAt = now
	}
	s.NDR.LastAttemptAt = timePtr(attemptAt)

	if s.NDR.Attempts < policy.MaxAttempts {
		s.NDR.NextAttemptAt = timePtr(now.Add(policy.RetryAfter))
	} else {
		s.NDR.NextAttemptAt = nil
	}

	// Back into the action-required queue.
	s.NDR.ResolutionAction = ""
}

func timePtr(t time.Time) *time.Time {
	return &t
}
