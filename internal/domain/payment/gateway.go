package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeRequest asks the gateway to capture a payment against a
// tokenized payment method.
type ChargeRequest struct {
	Amount          decimal.Decimal
	Currency        string
	PaymentMethodID string
	Description     string
	Metadata        map[string]string
}

// ChargeResult is the gateway's answer to a charge attempt.
type ChargeResult struct {
	GatewayPaymentID string
	Succeeded        bool
	FailureMessage   string
}

// Gateway is the external payment collaborator. Implementations are
// synchronous from the caller's perspective; a declined card is a
// ChargeResult with Succeeded=false, while a transport or gateway error
// is returned as err.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
