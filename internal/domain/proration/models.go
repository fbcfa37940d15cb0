package proration

import (
	"time"

	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/shopspring/decimal"
)

// PlanInput is the slice of a catalog plan the calculator needs.
type PlanInput struct {
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
}

// QuoteParams holds all necessary input for calculating a proration
// quote. ChangeDate is always explicit; callers inject their clock
// rather than the calculator reading wall time.
type QuoteParams struct {
	CurrentPlan PlanInput `json:"current_plan"`
	NewPlan     PlanInput `json:"new_plan"`

	// ChangeDate is the date the change is evaluated
	ChangeDate time.Time `json:"change_date"`

	// PeriodStart and PeriodEnd bound the current paid period, inclusive
	// on both ends
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// BillingPeriod is an inclusive date range covered by one payment.
type BillingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TotalDays counts the days in the period, both endpoints included.
func (p BillingPeriod) TotalDays() int {
	return types.DaysBetween(p.Start, p.End) + 1
}

// PeriodDetail describes the billing period a quote was computed inside.
type PeriodDetail struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	TotalDays int       `json:"total_days"`
}

// UsageDetail splits the period at the change date. The change day
// belongs to DaysRemaining, so DaysUsed + DaysRemaining == TotalDays.
type UsageDetail struct {
	DaysUsed      int `json:"days_used"`
	DaysRemaining int `json:"days_remaining"`
}

// CurrentPlanSnapshot captures the outgoing plan's side of the quote.
// DailyRate and CreditForUnusedDays are rounded for display; the
// authoritative immediate charge is computed from unrounded values.
type CurrentPlanSnapshot struct {
	Name                string          `json:"name"`
	MonthlyPrice        decimal.Decimal `json:"monthly_price"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	CreditForUnusedDays decimal.Decimal `json:"credit_for_unused_days"`
}

// NewPlanSnapshot captures the incoming plan's side of the quote.
type NewPlanSnapshot struct {
	Name                   string          `json:"name"`
	MonthlyPrice           decimal.Decimal `json:"monthly_price"`
	DailyRate              decimal.Decimal `json:"daily_rate"`
	ChargeForRemainingDays decimal.Decimal `json:"charge_for_remaining_days"`
}

// ProrationDetail is the financial outcome of the change.
type ProrationDetail struct {
	// ImmediateCharge is positive when the user owes money, negative for
	// a credit, rounded once to 2 decimals
	ImmediateCharge decimal.Decimal `json:"immediate_charge"`
	IsUpgrade       bool            `json:"is_upgrade"`
	IsDowngrade     bool            `json:"is_downgrade"`
	// NextBillingAmount is the full, unrounded price of the new plan
	NextBillingAmount decimal.Decimal `json:"next_billing_amount"`
	// NextBillingDate is the day after the current period ends
	NextBillingDate time.Time `json:"next_billing_date"`
}

// Quote is the output of the calculator. It is immutable, computed fresh
// per request, and never persisted: a stale quote is recomputed rather
// than trusted.
type Quote struct {
	ChangeDate    time.Time           `json:"change_date"`
	CurrentPeriod PeriodDetail        `json:"current_period"`
	Usage         UsageDetail         `json:"usage"`
	CurrentPlan   CurrentPlanSnapshot `json:"current_plan"`
	NewPlan       NewPlanSnapshot     `json:"new_plan"`
	Proration     ProrationDetail     `json:"proration"`
	Summary       string              `json:"summary"`
}
