// Package stripe implements the payment gateway collaborator on top of
// the Stripe API.
package stripe

import (
	"context"

	"github.com/inkmatch/inkmatch/internal/config"
	"github.com/inkmatch/inkmatch/internal/domain/payment"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// Stripe treats these currencies as zero-decimal: amounts are sent in
// whole units, not cents. CLP is the one we bill in.
var zeroDecimalCurrencies = map[string]bool{
	"clp": true,
	"jpy": true,
	"krw": true,
}

// Gateway charges saved payment methods through Stripe PaymentIntents.
type Gateway struct {
	client *stripe.Client
	logger *logger.Logger
}

// NewGateway creates a Stripe-backed payment gateway from the configured
// secret key.
func NewGateway(cfg *config.Configuration, log *logger.Logger) (*Gateway, error) {
	if cfg.Stripe.SecretKey == "" {
		return nil, ierr.NewError("stripe secret key is not configured").
			WithHint("Set stripe.secret_key or INKMATCH_STRIPE_SECRET_KEY").
			Mark(ierr.ErrValidation)
	}

	return &Gateway{
		client: stripe.NewClient(cfg.Stripe.SecretKey, nil),
		logger: log,
	}, nil
}

var _ payment.Gateway = (*Gateway)(nil)

// Charge captures an immediate off-session payment against a saved
// payment method. A declined card is reported in the result, not as an
// error; transport and gateway failures are errors.
func (g *Gateway) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("charge amount must be positive").
			WithHintf("Refusing to send %s to the gateway", req.Amount).
			Mark(ierr.ErrValidation)
	}

	params := &stripe.PaymentIntentCreateParams{
		Amount:        stripe.Int64(gatewayAmount(req.Amount, req.Currency)),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Description:   stripe.String(req.Description),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(true),
		Metadata:      req.Metadata,
	}

	intent, err := g.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Code == stripe.ErrorCodeCardDeclined {
			g.logger.Warnw("card declined",
				"payment_method_id", req.PaymentMethodID,
				"stripe_error_code", stripeErr.Code)
			return &payment.ChargeResult{
				Succeeded:      false,
				FailureMessage: stripeErr.Msg,
			}, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Payment gateway request failed").
			Mark(ierr.ErrPaymentFailed)
	}

	result := &payment.ChargeResult{
		GatewayPaymentID: intent.ID,
		Succeeded:        intent.Status == stripe.PaymentIntentStatusSucceeded,
	}
	if !result.Succeeded {
		result.FailureMessage = string(intent.Status)
	}

	g.logger.Infow("stripe charge completed",
		"payment_intent_id", intent.ID,
		"status", intent.Status,
		"amount", req.Amount)

	return result, nil
}

// gatewayAmount converts a decimal amount to Stripe's integer unit for
// the currency.
func gatewayAmount(amount decimal.Decimal, currency string) int64 {
	if zeroDecimalCurrencies[currency] {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
