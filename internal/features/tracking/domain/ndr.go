package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidNDRAction is returned for an unknown resolution action.
	ErrInvalidNDRAction = errors.New("invalid ndr action")
	// ErrNotInNDR is returned when resolving a shipment that is not awaiting resolution.
	ErrNotInNDR = errors.New("shipment is not in ndr")
)

// NDRAction is the merchant's answer to a failed delivery attempt.
type NDRAction string

const (
	NDRActionReattempt     NDRAction = "reattempt"
	NDRActionRTO           NDRAction = "rto"
	NDRActionChangeAddress NDRAction = "change_address"
)

// NDRResolution is one recorded resolution action.
type NDRResolution struct {
	Action  NDRAction `json:"action"`
	Remarks string    `json:"remarks,omitempty"`
	At      time.Time `json:"at"`
}

// IsValid reports whether a is a known action.
func (a NDRAction) IsValid() bool {
	switch a {
	case NDRActionReattempt, NDRActionRTO, NDRActionChangeAddress:
		return true
	}
	return false
}

// ResolveNDR records a resolution action for the current failed attempt.
func (s *Shipment) ResolveNDR(action NDRAction, remarks string, now time.Time) error {
	if !action.IsValid() {
		return ErrInvalidNDRAction
	}
	if s.Status != StatusNDR || !s.NDR.IsNDR {
		return ErrNotInNDR
	}

	s.NDR.ResolutionAction = action
	s.NDR.ResolutionHistory = append(s.NDR.ResolutionHistory, NDRResolution{
		Action:  action,
		Remarks: remarks,
		At:      now,
	})
	s.UpdatedAt = now
	return nil
}
