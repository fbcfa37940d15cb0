package testutil

import (
	"context"
	"sync"

	"github.com/inkmatch/inkmatch/internal/domain/payment"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/types"
)

var _ payment.Gateway = (*MockGateway)(nil)

// MockGateway is a scriptable payment gateway for tests. By default every
// charge succeeds; tests flip DeclineNext or FailNext to exercise the
// failure paths. All received requests are recorded.
type MockGateway struct {
	mu sync.Mutex

	// DeclineNext makes the next charge come back declined
	DeclineNext bool
	// FailNext makes the next charge return a transport error
	FailNext bool

	Requests []payment.ChargeRequest
}

// NewMockGateway creates a new mock payment gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Requests = append(g.Requests, req)

	if g.FailNext {
		g.FailNext = false
		return nil, ierr.NewError("gateway unreachable").
			Mark(ierr.ErrPaymentFailed)
	}

	if g.DeclineNext {
		g.DeclineNext = false
		return &payment.ChargeResult{
			Succeeded:      false,
			FailureMessage: "card declined",
		}, nil
	}

	return &payment.ChargeResult{
		GatewayPaymentID: types.GenerateUUIDWithPrefix("pi"),
		Succeeded:        true,
	}, nil
}

// LastRequest returns the most recent charge request, or nil when the
// gateway was never called.
func (g *MockGateway) LastRequest() *payment.ChargeRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.Requests) == 0 {
		return nil
	}
	req := g.Requests[len(g.Requests)-1]
	return &req
}

// Clear resets the recorded requests and scripted behavior
func (g *MockGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Requests = nil
	g.DeclineNext = false
	g.FailNext = false
}
