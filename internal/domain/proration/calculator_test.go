package proration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator() Calculator {
	return NewCalculator(NewDescriber("es-CL"))
}

func TestCalculator_Calculate(t *testing.T) {
	ctx := context.Background()
	calc := newTestCalculator()

	tests := []struct {
		name          string
		params        QuoteParams
		check         func(t *testing.T, q *Quote)
		expectedError bool
	}{
		{
			name: "mid_period_upgrade",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Premium", MonthlyPrice: decimal.NewFromInt(9990)},
				NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
				ChangeDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			},
			check: func(t *testing.T, q *Quote) {
				assert.Equal(t, 30, q.CurrentPeriod.TotalDays)
				assert.Equal(t, 14, q.Usage.DaysUsed)
				assert.Equal(t, 16, q.Usage.DaysRemaining)
				assert.True(t, q.CurrentPlan.DailyRate.Equal(decimal.NewFromInt(333)),
					"current daily rate %s", q.CurrentPlan.DailyRate)
				assert.True(t, q.NewPlan.DailyRate.Equal(decimal.NewFromFloat(666.33)),
					"new daily rate %s", q.NewPlan.DailyRate)
				assert.True(t, q.CurrentPlan.CreditForUnusedDays.Equal(decimal.NewFromInt(5328)),
					"credit %s", q.CurrentPlan.CreditForUnusedDays)
				assert.True(t, q.NewPlan.ChargeForRemainingDays.Equal(decimal.NewFromFloat(10661.33)),
					"charge %s", q.NewPlan.ChargeForRemainingDays)
				assert.True(t, q.Proration.ImmediateCharge.Equal(decimal.NewFromFloat(5333.33)),
					"immediate charge %s", q.Proration.ImmediateCharge)
				assert.True(t, q.Proration.IsUpgrade)
				assert.False(t, q.Proration.IsDowngrade)
				assert.True(t, q.Proration.NextBillingAmount.Equal(decimal.NewFromInt(19990)))
				assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), q.Proration.NextBillingDate)
			},
		},
		{
			name: "mid_period_downgrade",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
				NewPlan:     PlanInput{Name: "Premium", MonthlyPrice: decimal.NewFromInt(9990)},
				ChangeDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			},
			check: func(t *testing.T, q *Quote) {
				assert.True(t, q.Proration.ImmediateCharge.Equal(decimal.NewFromFloat(-5333.33)),
					"immediate charge %s", q.Proration.ImmediateCharge)
				assert.False(t, q.Proration.IsUpgrade)
				assert.True(t, q.Proration.IsDowngrade)
			},
		},
		{
			name: "same_plan_on_first_day_is_noop",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(4990)},
				NewPlan:     PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(4990)},
				ChangeDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			},
			check: func(t *testing.T, q *Quote) {
				assert.True(t, q.Proration.ImmediateCharge.IsZero())
				assert.False(t, q.Proration.IsUpgrade)
				assert.False(t, q.Proration.IsDowngrade)
				assert.Equal(t, 0, q.Usage.DaysUsed)
				assert.Equal(t, 31, q.Usage.DaysRemaining)
			},
		},
		{
			name: "lateral_same_price_nets_to_zero",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Premium", MonthlyPrice: decimal.NewFromInt(9990)},
				NewPlan:     PlanInput{Name: "Premium Anual", MonthlyPrice: decimal.NewFromInt(9990)},
				ChangeDate:  time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			},
			check: func(t *testing.T, q *Quote) {
				assert.True(t, q.Proration.ImmediateCharge.IsZero())
				assert.False(t, q.Proration.IsUpgrade)
				assert.False(t, q.Proration.IsDowngrade)
			},
		},
		{
			name: "change_on_last_day_charges_single_day_delta",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(3000)},
				NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(6000)},
				ChangeDate:  time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
			},
			check: func(t *testing.T, q *Quote) {
				assert.Equal(t, 1, q.Usage.DaysRemaining)
				// (6000-3000)/30 * 1 = 100
				assert.True(t, q.Proration.ImmediateCharge.Equal(decimal.NewFromInt(100)),
					"immediate charge %s", q.Proration.ImmediateCharge)
			},
		},
		{
			name: "free_plan_to_paid_plan",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Gratis", MonthlyPrice: decimal.Zero},
				NewPlan:     PlanInput{Name: "Premium", MonthlyPrice: decimal.NewFromInt(9990)},
				ChangeDate:  time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			},
			check: func(t *testing.T, q *Quote) {
				// 9990/30 * 15 = 4995
				assert.True(t, q.Proration.ImmediateCharge.Equal(decimal.NewFromInt(4995)),
					"immediate charge %s", q.Proration.ImmediateCharge)
				assert.True(t, q.Proration.IsUpgrade)
			},
		},
		{
			name: "missing_change_date",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(4990)},
				NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
				PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			},
			expectedError: true,
		},
		{
			name: "period_end_before_start",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(4990)},
				NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
				ChangeDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			expectedError: true,
		},
		{
			name: "change_date_before_period",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(4990)},
				NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
				ChangeDate:  time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			},
			expectedError: true,
		},
		{
			name: "negative_price",
			params: QuoteParams{
				CurrentPlan: PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(-10)},
				NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
				ChangeDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := calc.Calculate(ctx, tt.params)
			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, quote)
			tt.check(t, quote)
		})
	}
}

func TestCalculator_DayCountInvariant(t *testing.T) {
	ctx := context.Background()
	calc := newTestCalculator()

	periodStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	for day := 1; day <= 31; day++ {
		quote, err := calc.Calculate(ctx, QuoteParams{
			CurrentPlan: PlanInput{Name: "Basic", MonthlyPrice: decimal.NewFromInt(4990)},
			NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
			ChangeDate:  time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		require.NoError(t, err)

		// the change day belongs to daysRemaining, not daysUsed
		assert.Equal(t, quote.CurrentPeriod.TotalDays,
			quote.Usage.DaysUsed+quote.Usage.DaysRemaining,
			"day %d", day)
	}
}

func TestCalculator_Symmetry(t *testing.T) {
	ctx := context.Background()
	calc := newTestCalculator()

	planA := PlanInput{Name: "Premium", MonthlyPrice: decimal.NewFromInt(9990)}
	planB := PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)}
	changeDate := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	periodStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	forward, err := calc.Calculate(ctx, QuoteParams{
		CurrentPlan: planA, NewPlan: planB,
		ChangeDate: changeDate, PeriodStart: periodStart, PeriodEnd: periodEnd,
	})
	require.NoError(t, err)

	backward, err := calc.Calculate(ctx, QuoteParams{
		CurrentPlan: planB, NewPlan: planA,
		ChangeDate: changeDate, PeriodStart: periodStart, PeriodEnd: periodEnd,
	})
	require.NoError(t, err)

	// switching back costs the negative of switching forward, modulo
	// independent rounding
	diff := forward.Proration.ImmediateCharge.Add(backward.Proration.ImmediateCharge).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"forward %s backward %s", forward.Proration.ImmediateCharge, backward.Proration.ImmediateCharge)
}

func TestCalculator_RoundingStability(t *testing.T) {
	ctx := context.Background()
	calc := newTestCalculator()

	params := QuoteParams{
		CurrentPlan: PlanInput{Name: "Premium", MonthlyPrice: decimal.NewFromInt(9990)},
		NewPlan:     PlanInput{Name: "Pro", MonthlyPrice: decimal.NewFromInt(19990)},
		ChangeDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
	}

	first, err := calc.Calculate(ctx, params)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := calc.Calculate(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, first.Proration.ImmediateCharge.String(), again.Proration.ImmediateCharge.String())
		assert.Equal(t, first.Summary, again.Summary)
	}

	// never more than 2 decimal places
	assert.LessOrEqual(t, int(-first.Proration.ImmediateCharge.Exponent()), 2)
}

func TestCalculator_Monotonicity(t *testing.T) {
	ctx := context.Background()
	calc := newTestCalculator()

	prev := decimal.New(-1<<30, 0)
	for price := int64(1000); price <= 30000; price += 1000 {
		quote, err := calc.Calculate(ctx, QuoteParams{
			CurrentPlan: PlanInput{Name: "Premium", MonthlyPrice: decimal.NewFromInt(9990)},
			NewPlan:     PlanInput{Name: "Target", MonthlyPrice: decimal.NewFromInt(price)},
			ChangeDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		assert.True(t, quote.Proration.ImmediateCharge.GreaterThan(prev),
			"charge %s at price %d not greater than %s", quote.Proration.ImmediateCharge, price, prev)
		prev = quote.Proration.ImmediateCharge
	}
}
