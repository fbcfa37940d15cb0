package dto

import (
	"github.com/inkmatch/inkmatch/internal/domain/subscription"
)

type SubscriptionResponse struct {
	*subscription.Subscription
}

// BillingPeriodResponse reports the inclusive date range the current
// payment covers.
type BillingPeriodResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	TotalDays int    `json:"total_days"`
}

type NextBillingDateResponse struct {
	NextBillingDate string `json:"next_billing_date"`
}
