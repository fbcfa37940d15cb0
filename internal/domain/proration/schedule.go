package proration

import (
	"time"

	"github.com/inkmatch/inkmatch/internal/domain/subscription"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/types"
)

// ISO date layout used for billing dates exposed to the UI layer.
const isoDateFormat = "2006-01-02"

// NextBillingDate returns the subscription's next charge date as an ISO
// date string. An explicit next payment date wins; otherwise it is one
// calendar month after the subscription start.
func NextBillingDate(sub *subscription.Subscription) (string, error) {
	if sub == nil {
		return "", ierr.NewError("subscription is required").
			WithHint("Cannot compute a billing date without a subscription").
			Mark(ierr.ErrValidation)
	}

	if sub.NextPaymentDate != nil {
		return types.DateOnly(*sub.NextPaymentDate).Format(isoDateFormat), nil
	}

	if sub.StartDate.IsZero() {
		return "", ierr.NewError("subscription has no start date").
			WithHint("Subscription carries neither a next payment date nor a start date").
			Mark(ierr.ErrValidation)
	}

	return types.DateOnly(sub.StartDate).AddDate(0, 1, 0).Format(isoDateFormat), nil
}

// CurrentBillingPeriod determines the active billing window for a
// subscription that may lack explicit period boundaries. With both a
// start date and a next payment date the period is
// [start, nextPayment-1d]. Legacy subscriptions fall back to monthly
// inference: anchor on the day-of-month of the start date (or creation
// date), build a candidate start in the current calendar month, shift
// back one month if that candidate is still in the future, and close
// the period one calendar month later minus a day. Both paths predate
// explicit period tracking and must stay behaviorally intact.
func CurrentBillingPeriod(sub *subscription.Subscription, now time.Time) (BillingPeriod, error) {
	if sub == nil {
		return BillingPeriod{}, ierr.NewError("subscription is required").
			WithHint("Cannot compute a billing period without a subscription").
			Mark(ierr.ErrValidation)
	}

	if !sub.StartDate.IsZero() && sub.NextPaymentDate != nil {
		return BillingPeriod{
			Start: types.DateOnly(sub.StartDate),
			End:   types.DateOnly(*sub.NextPaymentDate).AddDate(0, 0, -1),
		}, nil
	}

	anchor := sub.StartDate
	if anchor.IsZero() {
		anchor = sub.CreatedAt
	}
	if anchor.IsZero() {
		return BillingPeriod{}, ierr.NewError("subscription has no usable anchor date").
			WithHint("Subscription carries no start date and no creation date").
			Mark(ierr.ErrValidation)
	}

	today := types.DateOnly(now)
	candidate := time.Date(today.Year(), today.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.After(today) {
		candidate = candidate.AddDate(0, -1, 0)
	}

	return BillingPeriod{
		Start: candidate,
		End:   candidate.AddDate(0, 1, 0).AddDate(0, 0, -1),
	}, nil
}
