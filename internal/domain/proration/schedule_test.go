package proration

import (
	"testing"
	"time"

	"github.com/inkmatch/inkmatch/internal/domain/subscription"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBillingDate(t *testing.T) {
	nextPayment := time.Date(2024, 2, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		sub           *subscription.Subscription
		expected      string
		expectedError bool
	}{
		{
			name: "explicit_next_payment_date_wins",
			sub: &subscription.Subscription{
				StartDate:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				NextPaymentDate: &nextPayment,
			},
			expected: "2024-02-05",
		},
		{
			name: "derived_from_start_date_plus_one_month",
			sub: &subscription.Subscription{
				StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			},
			expected: "2024-02-15",
		},
		{
			name: "month_end_normalizes_forward",
			sub: &subscription.Subscription{
				StartDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			},
			// Jan 31 + 1 month normalizes past February
			expected: "2024-03-02",
		},
		{
			name:          "nil_subscription",
			sub:           nil,
			expectedError: true,
		},
		{
			name:          "no_dates_at_all",
			sub:           &subscription.Subscription{},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextBillingDate(tt.sub)
			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCurrentBillingPeriod(t *testing.T) {
	now := time.Date(2024, 6, 20, 15, 0, 0, 0, time.UTC)
	nextPayment := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		sub           *subscription.Subscription
		expectedStart time.Time
		expectedEnd   time.Time
		expectedError bool
	}{
		{
			name: "explicit_bounds",
			sub: &subscription.Subscription{
				StartDate:       time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				NextPaymentDate: &nextPayment,
			},
			expectedStart: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "inferred_anchor_in_current_month",
			sub: &subscription.Subscription{
				StartDate: time.Date(2023, 11, 12, 0, 0, 0, 0, time.UTC),
			},
			// anchor day 12, candidate 2024-06-12 is not in the future
			expectedStart: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "inferred_anchor_shifts_back_a_month",
			sub: &subscription.Subscription{
				StartDate: time.Date(2023, 11, 25, 0, 0, 0, 0, time.UTC),
			},
			// candidate 2024-06-25 is after now=2024-06-20, so the period
			// anchors in May
			expectedStart: time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "falls_back_to_created_at",
			sub: &subscription.Subscription{
				BaseModel: types.BaseModel{
					CreatedAt: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC),
				},
			},
			expectedStart: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "no_anchor_available",
			sub:           &subscription.Subscription{},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := CurrentBillingPeriod(tt.sub, now)
			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, period.Start)
			assert.Equal(t, tt.expectedEnd, period.End)
		})
	}
}
