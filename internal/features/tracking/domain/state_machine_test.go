package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []CanonicalStatus{
	StatusPickupsManifests, StatusInTransit, StatusOutForDelivery, StatusDelivered,
	StatusNDR, StatusRTOInTransit, StatusRTODelivered, StatusCancelled, StatusLost,
}

func TestEvaluate_TerminalLock(t *testing.T) {
	for _, terminal := range []CanonicalStatus{StatusDelivered, StatusRTODelivered, StatusCancelled} {
		for _, next := range allStatuses {
			if next == terminal {
				continue
			}
			tr := Evaluate(terminal, next)
			assert.Equal(t, OutcomeLocked, tr.Outcome, "%s -> %s", terminal, next)
			assert.Equal(t, terminal, tr.To)
			assert.Empty(t, tr.Effects)
			assert.False(t, tr.Applied())
		}
	}
}

func TestEvaluate_Noop(t *testing.T) {
	for _, s := range allStatuses {
		if s == StatusNDR {
			continue
		}
		tr := Evaluate(s, s)
		assert.Equal(t, OutcomeNoop, tr.Outcome, "%s -> %s", s, s)
		assert.Empty(t, tr.Effects)
	}
}

func TestEvaluate_NDRReentryIsNewAttempt(t *testing.T) {
	tr := Evaluate(StatusNDR, StatusNDR)
	assert.True(t, tr.Applied())
	assert.Equal(t, []Effect{EffectIncrementNDR}, tr.Effects)
}

func TestEvaluate_NonTerminalMovesAnywhere(t *testing.T) {
	nonTerminal := []CanonicalStatus{StatusPickupsManifests, StatusInTransit, StatusOutForDelivery, StatusNDR, StatusRTOInTransit, StatusLost, ""}
	for _, current := range nonTerminal {
		for _, next := range allStatuses {
			if current == next && next != StatusNDR {
				continue
			}
			tr := Evaluate(current, next)
			assert.True(t, tr.Applied(), "%q -> %s", current, next)
			assert.Equal(t, next, tr.To)
		}
	}
}

func TestEvaluate_Effects(t *testing.T) {
	tests := []struct {
		next     CanonicalStatus
		expected []Effect
	}{
		{StatusDelivered, []Effect{EffectRecordDelivered}},
		{StatusNDR, []Effect{EffectIncrementNDR}},
		{StatusRTOInTransit, []Effect{EffectClearNDR}},
		{StatusRTODelivered, []Effect{EffectRecordRTODelivered, EffectClearNDR}},
		{StatusCancelled, []Effect{EffectRecordCancelled}},
		{StatusLost, []Effect{EffectMarkLost}},
		{StatusOutForDelivery, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.next), func(t *testing.T) {
			tr := Evaluate(StatusInTransit, tt.next)
			assert.Equal(t, tt.expected, tr.Effects)
		})
	}
}
