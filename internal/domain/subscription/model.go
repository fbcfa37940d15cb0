package subscription

import (
	"time"

	"github.com/inkmatch/inkmatch/internal/types"
)

// Subscription ties an artist to a plan. Subscriptions created before
// explicit period tracking existed may carry no NextPaymentDate; the
// proration package infers their billing period from StartDate (or
// CreatedAt when even that is missing).
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// ArtistID is the identifier of the artist who owns this subscription
	ArtistID string `db:"artist_id" json:"artist_id"`

	// PlanID is the identifier for the plan in our system
	PlanID string `db:"plan_id" json:"plan_id"`

	// SubscriptionStatus is the status of the subscription
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`

	// StartDate is the date the current paid period began
	StartDate time.Time `db:"start_date" json:"start_date"`

	// NextPaymentDate is the date the next recurring payment is due.
	// Nil for legacy subscriptions without explicit period tracking.
	NextPaymentDate *time.Time `db:"next_payment_date" json:"next_payment_date"`

	// CancelAtPeriodEnd marks a subscription already scheduled to end
	CancelAtPeriodEnd bool `db:"cancel_at_period_end" json:"cancel_at_period_end"`

	// CancelledAt is the date the subscription was cancelled
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at"`

	types.BaseModel
}

// IsActive reports whether the subscription can be changed to another plan.
func (s *Subscription) IsActive() bool {
	return s.SubscriptionStatus == types.SubscriptionStatusActive ||
		s.SubscriptionStatus == types.SubscriptionStatusTrialing
}
