package payment

import (
	"time"

	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/shopspring/decimal"
)

// Payment represents a payment transaction collected for a plan change
// or a recurring renewal.
type Payment struct {
	ID string `db:"id" json:"id"`

	// SubscriptionID links the payment to the subscription it funds
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`

	// PlanID is the plan the payment pays for
	PlanID string `db:"plan_id" json:"plan_id"`

	// Amount is the charged value in Currency. Always strictly positive;
	// the plan-change policy never sends a zero or negative charge.
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// Currency is a lowercase three-letter ISO code
	Currency string `db:"currency" json:"currency"`

	// PaymentMethodID identifies the tokenized payment method at the gateway
	PaymentMethodID string `db:"payment_method_id" json:"payment_method_id"`

	// PaymentStatus shows the current state of this payment
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`

	// GatewayPaymentID is the transaction identifier from the external gateway
	GatewayPaymentID *string `db:"gateway_payment_id" json:"gateway_payment_id,omitempty"`

	// ErrorMessage provides details about why the payment failed
	ErrorMessage *string `db:"error_message" json:"error_message,omitempty"`

	SucceededAt *time.Time `db:"succeeded_at" json:"succeeded_at,omitempty"`
	FailedAt    *time.Time `db:"failed_at" json:"failed_at,omitempty"`

	types.BaseModel
}
