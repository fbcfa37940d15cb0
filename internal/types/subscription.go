package types

import (
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionStatus is the lifecycle status of an artist subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusTrialing  SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

var SubscriptionStatusValues = []SubscriptionStatus{
	SubscriptionStatusActive,
	SubscriptionStatusTrialing,
	SubscriptionStatusPastDue,
	SubscriptionStatusCancelled,
}

func (s SubscriptionStatus) Validate() error {
	if !lo.Contains(SubscriptionStatusValues, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Subscription status must be active, trialing, past_due, or cancelled").
			WithReportableDetails(map[string]any{
				"allowed_values": SubscriptionStatusValues,
				"provided_value": s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s SubscriptionStatus) String() string {
	return string(s)
}
