package types

import (
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/samber/lo"
)

// PlanChangeType classifies a plan change by comparing the flat monthly
// prices of the current and target plans, not the sign of the prorated
// delta (the two agree in practice but the price comparison is the rule).
type PlanChangeType string

const (
	PlanChangeTypeUpgrade   PlanChangeType = "upgrade"
	PlanChangeTypeDowngrade PlanChangeType = "downgrade"
	PlanChangeTypeLateral   PlanChangeType = "lateral"
)

func (t PlanChangeType) String() string {
	return string(t)
}

// PlanChangeState is the state of a plan-change attempt. The idle state
// of the flow is the absence of an attempt; an attempt is created
// already quoted.
type PlanChangeState string

const (
	PlanChangeStateQuoted          PlanChangeState = "quoted"
	PlanChangeStateAwaitingPayment PlanChangeState = "awaiting_payment"
	PlanChangeStateAwaitingAck     PlanChangeState = "awaiting_acknowledgment"
	PlanChangeStateConfirmed       PlanChangeState = "confirmed"
	PlanChangeStateCancelled       PlanChangeState = "cancelled"
)

var PlanChangeStateValues = []PlanChangeState{
	PlanChangeStateQuoted,
	PlanChangeStateAwaitingPayment,
	PlanChangeStateAwaitingAck,
	PlanChangeStateConfirmed,
	PlanChangeStateCancelled,
}

// planChangeTransitions lists the legal state transitions. Cancellation
// is permitted from every non-terminal state and has no side effects.
var planChangeTransitions = map[PlanChangeState][]PlanChangeState{
	PlanChangeStateQuoted: {
		PlanChangeStateAwaitingPayment,
		PlanChangeStateAwaitingAck,
		PlanChangeStateConfirmed,
		PlanChangeStateCancelled,
	},
	PlanChangeStateAwaitingPayment: {
		PlanChangeStateConfirmed,
		// payment failure or user retry returns the attempt to quoted
		PlanChangeStateQuoted,
		PlanChangeStateCancelled,
	},
	PlanChangeStateAwaitingAck: {
		PlanChangeStateConfirmed,
		PlanChangeStateQuoted,
		PlanChangeStateCancelled,
	},
}

// CanTransition reports whether moving from s to target is legal.
func (s PlanChangeState) CanTransition(target PlanChangeState) bool {
	return lo.Contains(planChangeTransitions[s], target)
}

// IsTerminal reports whether the attempt has reached a final state.
func (s PlanChangeState) IsTerminal() bool {
	return s == PlanChangeStateConfirmed || s == PlanChangeStateCancelled
}

func (s PlanChangeState) Validate() error {
	if !lo.Contains(PlanChangeStateValues, s) {
		return ierr.NewError("invalid plan change state").
			WithHint("Unknown plan change state").
			WithReportableDetails(map[string]any{
				"allowed_values": PlanChangeStateValues,
				"provided_value": s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s PlanChangeState) String() string {
	return string(s)
}
