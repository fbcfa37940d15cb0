// Package proration computes the financial delta of switching plans
// mid-cycle using a daily-rate linear model: no compounding, no
// partial-day rounding beyond a single final 2-decimal rounding.
package proration

import (
	"context"
	"fmt"

	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/shopspring/decimal"
)

// Calculator produces proration quotes. It is pure computation with no
// I/O; kept behind an interface to allow alternative strategies and
// easier testing.
type Calculator interface {
	Calculate(ctx context.Context, params QuoteParams) (*Quote, error)
}

// NewCalculator creates the default day-based calculator. The describer
// controls the locale of the human-readable summary.
func NewCalculator(describer *Describer) Calculator {
	return &dayBasedCalculator{describer: describer}
}

// dayBasedCalculator implements the daily-rate proration model with
// inclusive day counts: the period spans end-start+1 days, and the
// remaining span counts the change day itself.
type dayBasedCalculator struct {
	describer *Describer
}

func (c *dayBasedCalculator) Calculate(ctx context.Context, params QuoteParams) (*Quote, error) {
	if err := validateParams(params); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("invalid proration params: %v", err).
			Mark(ierr.ErrValidation)
	}

	changeDate := types.DateOnly(params.ChangeDate)
	periodStart := types.DateOnly(params.PeriodStart)
	periodEnd := types.DateOnly(params.PeriodEnd)

	totalDays := types.DaysBetween(periodStart, periodEnd) + 1
	daysUsed := types.DaysBetween(periodStart, changeDate)
	daysRemaining := types.DaysBetween(changeDate, periodEnd) + 1

	decimalTotalDays := decimal.NewFromInt(int64(totalDays))
	decimalDaysRemaining := decimal.NewFromInt(int64(daysRemaining))

	currentDailyRate := params.CurrentPlan.MonthlyPrice.Div(decimalTotalDays)
	newDailyRate := params.NewPlan.MonthlyPrice.Div(decimalTotalDays)

	creditForUnusedDays := currentDailyRate.Mul(decimalDaysRemaining)
	chargeForRemainingDays := newDailyRate.Mul(decimalDaysRemaining)

	// The authoritative charge is derived from unrounded intermediates
	// and rounded exactly once; the displayed sub-amounts are rounded
	// independently.
	immediateCharge := chargeForRemainingDays.Sub(creditForUnusedDays).Round(2)

	quote := &Quote{
		ChangeDate: changeDate,
		CurrentPeriod: PeriodDetail{
			Start:     periodStart,
			End:       periodEnd,
			TotalDays: totalDays,
		},
		Usage: UsageDetail{
			DaysUsed:      daysUsed,
			DaysRemaining: daysRemaining,
		},
		CurrentPlan: CurrentPlanSnapshot{
			Name:                params.CurrentPlan.Name,
			MonthlyPrice:        params.CurrentPlan.MonthlyPrice,
			DailyRate:           currentDailyRate.Round(2),
			CreditForUnusedDays: creditForUnusedDays.Round(2),
		},
		NewPlan: NewPlanSnapshot{
			Name:                   params.NewPlan.Name,
			MonthlyPrice:           params.NewPlan.MonthlyPrice,
			DailyRate:              newDailyRate.Round(2),
			ChargeForRemainingDays: chargeForRemainingDays.Round(2),
		},
		Proration: ProrationDetail{
			ImmediateCharge:   immediateCharge,
			IsUpgrade:         immediateCharge.GreaterThan(decimal.Zero),
			IsDowngrade:       immediateCharge.LessThan(decimal.Zero),
			NextBillingAmount: params.NewPlan.MonthlyPrice,
			NextBillingDate:   periodEnd.AddDate(0, 0, 1),
		},
	}

	quote.Summary = c.describer.Describe(
		params.CurrentPlan.Name,
		params.NewPlan.Name,
		immediateCharge,
		daysRemaining,
		periodEnd,
	)

	return quote, nil
}

// validateParams checks if essential parameters are provided. Plan data
// is validated here so malformed catalog prices fail closed instead of
// flowing into the arithmetic.
func validateParams(params QuoteParams) error {
	if params.ChangeDate.IsZero() {
		return fmt.Errorf("change date is required")
	}
	if params.PeriodStart.IsZero() || params.PeriodEnd.IsZero() {
		return fmt.Errorf("billing period start and end dates are required")
	}
	if params.PeriodEnd.Before(params.PeriodStart) {
		return fmt.Errorf("billing period end date cannot be before start date")
	}
	if params.CurrentPlan.MonthlyPrice.IsNegative() || params.NewPlan.MonthlyPrice.IsNegative() {
		return fmt.Errorf("plan prices cannot be negative")
	}

	changeDate := types.DateOnly(params.ChangeDate)
	if changeDate.Before(types.DateOnly(params.PeriodStart)) ||
		changeDate.After(types.DateOnly(params.PeriodEnd)) {
		return fmt.Errorf("change date must fall inside the billing period")
	}

	return nil
}
