package types

import (
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/samber/lo"
)

// PaymentStatus is the state of a payment transaction.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

var PaymentStatusValues = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusSucceeded,
	PaymentStatusFailed,
}

func (p PaymentStatus) Validate() error {
	if !lo.Contains(PaymentStatusValues, p) {
		return ierr.NewError("invalid payment status").
			WithHint("Payment status must be pending, succeeded, or failed").
			WithReportableDetails(map[string]any{
				"allowed_values": PaymentStatusValues,
				"provided_value": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (p PaymentStatus) String() string {
	return string(p)
}

// PaymentGatewayType represents the type of payment gateway
type PaymentGatewayType string

const (
	PaymentGatewayTypeStripe PaymentGatewayType = "stripe"
)

func (p PaymentGatewayType) String() string {
	return string(p)
}
