package domain

// Outcome classifies the state machine's decision for one mapped event.
type Outcome string

const (
	// OutcomeApplied means the transition is legal and must be written.
	OutcomeApplied Outcome = "applied"
	// OutcomeNoop means the mapped state equals the current one.
	OutcomeNoop Outcome = "noop"
	// OutcomeLocked means the shipment is terminal and the event was refused.
	OutcomeLocked Outcome = "locked"
)

// Effect is a side-effect intent computed by the state machine and performed
// by Shipment.Apply.
type Effect string

const (
	EffectRecordDelivered    Effect = "record_delivered"
	EffectIncrementNDR       Effect = "increment_ndr"
	EffectClearNDR           Effect = "clear_ndr"
	EffectRecordRTODelivered Effect = "record_rto_delivered"
	EffectRecordCancelled    Effect = "record_cancelled"
	EffectMarkLost           Effect = "mark_lost"
)

// Transition is the result of evaluating one mapped state against the current one.
type Transition struct {
	From    CanonicalStatus
	To      CanonicalStatus
	Outcome Outcome
	Effects []Effect
}

// Applied reports whether the transition changes the shipment.
func (t Transition) Applied() bool {
	return t.Outcome == OutcomeApplied
}

// Evaluate decides whether moving from current to next is legal.
//
// Any non-terminal state may move to any state. Terminal states refuse every
// other state. Re-entering ndr is a new failed attempt and is applied; any other
// self-transition is a no-op.
func Evaluate(current, next CanonicalStatus) Transition {
	t := Transition{From: current, To: next}

	switch {
	case current == next && next != StatusNDR:
		t.Outcome = OutcomeNoop
		t.To = current
		return t
	case current.IsTerminal():
		t.Outcome = OutcomeLocked
		t.To = current
		return t
	}

	t.Outcome = OutcomeApplied
	t.Effects = effectsFor(next)
	return t
}

func effectsFor(next CanonicalStatus) []Effect {
	switch next {
	case StatusDelivered:
		return []Effect{EffectRecordDelivered}
	case StatusNDR:
		return []Effect{EffectIncrementNDR}
	case StatusRTOInTransit:
		return []Effect{EffectClearNDR}
	case StatusRTODelivered:
		return []Effect{EffectRecordRTODelivered, EffectClearNDR}
	case StatusCancelled:
		return []Effect{EffectRecordCancelled}
	case StatusLost:
		return []Effect{EffectMarkLost}
	}
	return nil
}
