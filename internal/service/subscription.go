package service

import (
	"context"

	"github.com/inkmatch/inkmatch/internal/api/dto"
	"github.com/inkmatch/inkmatch/internal/domain/proration"
)

type SubscriptionService interface {
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	// GetBillingPeriod resolves the inclusive date range the current
	// payment covers, inferring boundaries for subscriptions that never
	// recorded an explicit next payment date.
	GetBillingPeriod(ctx context.Context, id string) (*dto.BillingPeriodResponse, error)
	GetNextBillingDate(ctx context.Context, id string) (*dto.NextBillingDateResponse, error)
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) GetBillingPeriod(ctx context.Context, id string) (*dto.BillingPeriodResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	period, err := proration.CurrentBillingPeriod(sub, s.Clock.Now())
	if err != nil {
		return nil, err
	}

	return &dto.BillingPeriodResponse{
		Start:     period.Start.Format("2006-01-02"),
		End:       period.End.Format("2006-01-02"),
		TotalDays: period.TotalDays(),
	}, nil
}

func (s *subscriptionService) GetNextBillingDate(ctx context.Context, id string) (*dto.NextBillingDateResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := proration.NextBillingDate(sub)
	if err != nil {
		return nil, err
	}

	return &dto.NextBillingDateResponse{NextBillingDate: next}, nil
}
