package subscription

import (
	"context"
)

// Repository defines the interface for subscription persistence
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	GetByArtistID(ctx context.Context, artistID string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
}
