package planchange

import (
	"context"
)

// Repository defines the interface for plan-change attempt persistence
type Repository interface {
	Create(ctx context.Context, attempt *Attempt) error
	Get(ctx context.Context, id string) (*Attempt, error)
	Update(ctx context.Context, attempt *Attempt) error
	// GetOpenBySubscriptionID returns the non-terminal attempt for a
	// subscription, or a not-found error when none is in flight.
	GetOpenBySubscriptionID(ctx context.Context, subscriptionID string) (*Attempt, error)
}
