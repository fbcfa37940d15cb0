package service

import (
	"context"

	"github.com/inkmatch/inkmatch/internal/domain/plan"
	"github.com/inkmatch/inkmatch/internal/domain/proration"
	"github.com/inkmatch/inkmatch/internal/domain/subscription"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
)

// ProrationService computes quotes for a live subscription. Quotes are
// never persisted; every caller gets a fresh computation at its own
// clock reading.
type ProrationService interface {
	QuoteChange(ctx context.Context, sub *subscription.Subscription, current, target *plan.Plan) (*proration.Quote, error)
}

type prorationService struct {
	ServiceParams
}

func NewProrationService(params ServiceParams) ProrationService {
	return &prorationService{ServiceParams: params}
}

func (s *prorationService) QuoteChange(ctx context.Context, sub *subscription.Subscription, current, target *plan.Plan) (*proration.Quote, error) {
	if current == nil || target == nil {
		return nil, ierr.NewError("plan data is missing").
			WithHint("Both the current and the target plan are required to quote a change").
			Mark(ierr.ErrValidation)
	}
	if current.Price.IsNegative() || target.Price.IsNegative() {
		return nil, ierr.NewError("invalid plan data").
			WithHint("Plan prices must be non-negative").
			WithReportableDetails(map[string]any{
				"current_price": current.Price,
				"target_price":  target.Price,
			}).
			Mark(ierr.ErrValidation)
	}

	now := s.Clock.Now()
	period, err := proration.CurrentBillingPeriod(sub, now)
	if err != nil {
		return nil, err
	}

	quote, err := s.Calculator.Calculate(ctx, proration.QuoteParams{
		CurrentPlan: proration.PlanInput{Name: current.Name, MonthlyPrice: current.Price},
		NewPlan:     proration.PlanInput{Name: target.Name, MonthlyPrice: target.Price},
		ChangeDate:  now,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
	})
	if err != nil {
		return nil, err
	}

	return quote, nil
}
