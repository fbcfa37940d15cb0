package dto

import (
	"github.com/inkmatch/inkmatch/internal/domain/planchange"
	"github.com/inkmatch/inkmatch/internal/domain/proration"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/inkmatch/inkmatch/internal/validator"
)

type PreviewPlanChangeRequest struct {
	TargetPlanID string `json:"target_plan_id" validate:"required"`
}

func (r *PreviewPlanChangeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// PlanChangePreviewResponse is the quote shown before any attempt is
// persisted. Warnings are present only for downgrades.
type PlanChangePreviewResponse struct {
	SubscriptionID string               `json:"subscription_id"`
	TargetPlanID   string               `json:"target_plan_id"`
	ChangeType     types.PlanChangeType `json:"change_type"`
	Quote          *proration.Quote     `json:"quote"`
	Warnings       []string             `json:"warnings,omitempty"`
}

type CreatePlanChangeRequest struct {
	TargetPlanID string `json:"target_plan_id" validate:"required"`
}

func (r *CreatePlanChangeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ConfirmPlanChangeRequest struct {
	// Acknowledged is the explicit downgrade risk acceptance. Required
	// for downgrades; ignored otherwise.
	Acknowledged bool `json:"acknowledged"`
	// PaymentMethodID is the tokenized payment method charged for
	// upgrades. Required when the change collects money.
	PaymentMethodID string `json:"payment_method_id"`
}

type PlanChangeResponse struct {
	*planchange.Attempt
	Quote *proration.Quote `json:"quote,omitempty"`
}
