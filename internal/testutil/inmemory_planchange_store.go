package testutil

import (
	"context"

	"github.com/inkmatch/inkmatch/internal/domain/planchange"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
)

// InMemoryPlanChangeStore implements planchange.Repository
type InMemoryPlanChangeStore struct {
	*InMemoryStore[*planchange.Attempt]
}

// NewInMemoryPlanChangeStore creates a new in-memory plan change store
func NewInMemoryPlanChangeStore() *InMemoryPlanChangeStore {
	return &InMemoryPlanChangeStore{
		InMemoryStore: NewInMemoryStore[*planchange.Attempt](),
	}
}

func (s *InMemoryPlanChangeStore) Create(ctx context.Context, attempt *planchange.Attempt) error {
	if attempt == nil {
		return ierr.NewError("attempt cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, attempt.ID, attempt)
}

func (s *InMemoryPlanChangeStore) Get(ctx context.Context, id string) (*planchange.Attempt, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryPlanChangeStore) Update(ctx context.Context, attempt *planchange.Attempt) error {
	if attempt == nil {
		return ierr.NewError("attempt cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, attempt.ID, attempt)
}

func (s *InMemoryPlanChangeStore) GetOpenBySubscriptionID(ctx context.Context, subscriptionID string) (*planchange.Attempt, error) {
	attempts, err := s.InMemoryStore.List(ctx, func(_ context.Context, a *planchange.Attempt) bool {
		return a != nil && a.SubscriptionID == subscriptionID && !a.State.IsTerminal()
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, ierr.NewErrorf("no open plan change for subscription %s", subscriptionID).
			Mark(ierr.ErrNotFound)
	}
	return attempts[0], nil
}
