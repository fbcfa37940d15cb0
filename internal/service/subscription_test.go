package service

import (
	"testing"
	"time"

	"github.com/inkmatch/inkmatch/internal/domain/plan"
	"github.com/inkmatch/inkmatch/internal/domain/proration"
	"github.com/inkmatch/inkmatch/internal/domain/subscription"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/testutil"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SubscriptionService
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSubscriptionService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		DB:             s.GetDB(),
		Cache:          s.GetCache(),
		PlanRepo:       s.GetStores().PlanRepo,
		SubRepo:        s.GetStores().SubscriptionRepo,
		PaymentRepo:    s.GetStores().PaymentRepo,
		PlanChangeRepo: s.GetStores().PlanChangeRepo,
		Gateway:        s.GetGateway(),
		Calculator:     proration.NewCalculator(proration.NewDescriber("es-CL")),
		FeatureTable:   plan.DefaultFeatureTable(),
		Clock:          s.GetClock(),
	})
}

func (s *SubscriptionServiceSuite) seedSubscription(start time.Time, next *time.Time) *subscription.Subscription {
	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		ArtistID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ARTIST),
		PlanID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		SubscriptionStatus: types.SubscriptionStatusActive,
		StartDate:          start,
		NextPaymentDate:    next,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func (s *SubscriptionServiceSuite) TestGetBillingPeriod_ExplicitDates() {
	next := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	sub := s.seedSubscription(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), &next)

	resp, err := s.service.GetBillingPeriod(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal("2024-06-01", resp.Start)
	s.Equal("2024-06-30", resp.End)
	s.Equal(30, resp.TotalDays)
}

// Legacy subscriptions carry no next payment date; the period is
// inferred from the start date's day-of-month at the suite clock
// reading of 2024-06-20.
func (s *SubscriptionServiceSuite) TestGetBillingPeriod_Inferred() {
	sub := s.seedSubscription(time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC), nil)

	resp, err := s.service.GetBillingPeriod(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal("2024-06-05", resp.Start)
	s.Equal("2024-07-04", resp.End)
}

func (s *SubscriptionServiceSuite) TestGetNextBillingDate() {
	next := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	sub := s.seedSubscription(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), &next)

	resp, err := s.service.GetNextBillingDate(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal("2024-07-01", resp.NextBillingDate)
}

func (s *SubscriptionServiceSuite) TestGetSubscription_NotFound() {
	_, err := s.service.GetSubscription(s.GetContext(), "subs_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
