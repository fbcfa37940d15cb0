package planchange

import (
	"time"

	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/shopspring/decimal"
)

// Attempt is one plan-change flow for a subscription. It records the
// policy's state machine; the proration quote itself is never persisted
// and is recomputed whenever the attempt advances.
type Attempt struct {
	ID string `db:"id" json:"id"`

	SubscriptionID string `db:"subscription_id" json:"subscription_id"`
	CurrentPlanID  string `db:"current_plan_id" json:"current_plan_id"`
	TargetPlanID   string `db:"target_plan_id" json:"target_plan_id"`

	// ChangeType is classified by flat monthly price comparison
	ChangeType types.PlanChangeType `db:"change_type" json:"change_type"`

	// State is the current position in the plan-change state machine
	State types.PlanChangeState `db:"state" json:"state"`

	// QuotedCharge snapshots the immediate charge shown to the user when
	// the attempt was last quoted. Display only; confirmation recomputes.
	QuotedCharge decimal.Decimal `db:"quoted_charge" json:"quoted_charge"`

	// Warnings lists the downgrade risk messages shown to the user
	Warnings []string `db:"-" json:"warnings,omitempty"`

	// Acknowledged records the explicit downgrade risk acceptance.
	// There is no default-accept.
	Acknowledged bool `db:"acknowledged" json:"acknowledged"`

	// PaymentID references the captured payment for confirmed upgrades
	PaymentID *string `db:"payment_id" json:"payment_id,omitempty"`

	ConfirmedAt *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`

	types.BaseModel
}

// Transition moves the attempt to a new state, rejecting moves the state
// machine does not allow.
func (a *Attempt) Transition(target types.PlanChangeState) error {
	if !a.State.CanTransition(target) {
		return ierr.NewError("illegal plan change transition").
			WithHintf("Cannot move a plan change from %s to %s", a.State, target).
			WithReportableDetails(map[string]any{
				"attempt_id": a.ID,
				"from":       a.State,
				"to":         target,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	a.State = target
	return nil
}
