package payment

import (
	"context"
)

// Repository defines the interface for payment persistence
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	ListBySubscriptionID(ctx context.Context, subscriptionID string) ([]*Payment, error)
}
