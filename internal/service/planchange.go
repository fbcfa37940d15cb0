package service

import (
	"context"
	"fmt"

	"github.com/inkmatch/inkmatch/internal/api/dto"
	"github.com/inkmatch/inkmatch/internal/domain/payment"
	"github.com/inkmatch/inkmatch/internal/domain/plan"
	"github.com/inkmatch/inkmatch/internal/domain/planchange"
	"github.com/inkmatch/inkmatch/internal/domain/proration"
	"github.com/inkmatch/inkmatch/internal/domain/subscription"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/shopspring/decimal"
)

// PlanChangeService drives the plan-change flow: preview, start, confirm
// and cancel. Quotes are recomputed at every step; a persisted attempt
// only snapshots the last amount shown to the user.
type PlanChangeService interface {
	PreviewChange(ctx context.Context, subscriptionID string, req dto.PreviewPlanChangeRequest) (*dto.PlanChangePreviewResponse, error)
	StartChange(ctx context.Context, subscriptionID string, req dto.CreatePlanChangeRequest) (*dto.PlanChangeResponse, error)
	ConfirmChange(ctx context.Context, attemptID string, req dto.ConfirmPlanChangeRequest) (*dto.PlanChangeResponse, error)
	CancelChange(ctx context.Context, attemptID string) (*dto.PlanChangeResponse, error)
	GetChange(ctx context.Context, attemptID string) (*dto.PlanChangeResponse, error)
}

type planChangeService struct {
	ServiceParams
	prorationSvc ProrationService
}

func NewPlanChangeService(params ServiceParams) PlanChangeService {
	return &planChangeService{
		ServiceParams: params,
		prorationSvc:  NewProrationService(params),
	}
}

func (s *planChangeService) PreviewChange(ctx context.Context, subscriptionID string, req dto.PreviewPlanChangeRequest) (*dto.PlanChangePreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, current, target, err := s.loadChangeContext(ctx, subscriptionID, req.TargetPlanID)
	if err != nil {
		return nil, err
	}

	quote, err := s.prorationSvc.QuoteChange(ctx, sub, current, target)
	if err != nil {
		return nil, err
	}

	changeType := classifyChange(current, target)
	warnings, err := s.downgradeWarnings(changeType, current, target)
	if err != nil {
		return nil, err
	}

	return &dto.PlanChangePreviewResponse{
		SubscriptionID: sub.ID,
		TargetPlanID:   target.ID,
		ChangeType:     changeType,
		Quote:          quote,
		Warnings:       warnings,
	}, nil
}

func (s *planChangeService) StartChange(ctx context.Context, subscriptionID string, req dto.CreatePlanChangeRequest) (*dto.PlanChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, current, target, err := s.loadChangeContext(ctx, subscriptionID, req.TargetPlanID)
	if err != nil {
		return nil, err
	}

	if open, err := s.PlanChangeRepo.GetOpenBySubscriptionID(ctx, sub.ID); err == nil {
		return nil, ierr.NewError("a plan change is already in progress").
			WithHint("Confirm or cancel the open plan change before starting another").
			WithReportableDetails(map[string]any{
				"attempt_id": open.ID,
				"state":      open.State,
			}).
			Mark(ierr.ErrAlreadyExists)
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	quote, err := s.prorationSvc.QuoteChange(ctx, sub, current, target)
	if err != nil {
		return nil, err
	}

	changeType := classifyChange(current, target)
	warnings, err := s.downgradeWarnings(changeType, current, target)
	if err != nil {
		return nil, err
	}

	attempt := &planchange.Attempt{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN_CHANGE),
		SubscriptionID: sub.ID,
		CurrentPlanID:  current.ID,
		TargetPlanID:   target.ID,
		ChangeType:     changeType,
		State:          types.PlanChangeStateQuoted,
		QuotedCharge:   quote.Proration.ImmediateCharge,
		Warnings:       warnings,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	if err := s.PlanChangeRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}

	s.Logger.Infow("started plan change",
		"attempt_id", attempt.ID,
		"subscription_id", sub.ID,
		"change_type", changeType,
		"quoted_charge", attempt.QuotedCharge)

	return &dto.PlanChangeResponse{Attempt: attempt, Quote: quote}, nil
}

func (s *planChangeService) ConfirmChange(ctx context.Context, attemptID string, req dto.ConfirmPlanChangeRequest) (*dto.PlanChangeResponse, error) {
	attempt, err := s.PlanChangeRepo.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.State.IsTerminal() {
		return nil, ierr.NewError("plan change is already closed").
			WithHintf("This plan change finished in state %s", attempt.State).
			Mark(ierr.ErrInvalidOperation)
	}

	sub, err := s.SubRepo.Get(ctx, attempt.SubscriptionID)
	if err != nil {
		return nil, err
	}
	current, err := s.PlanRepo.Get(ctx, attempt.CurrentPlanID)
	if err != nil {
		return nil, err
	}
	target, err := s.PlanRepo.Get(ctx, attempt.TargetPlanID)
	if err != nil {
		return nil, err
	}

	// The displayed quote may be stale by now. Recompute at the
	// confirmation clock reading so the charge reflects today's
	// remaining days, not the preview's.
	quote, err := s.prorationSvc.QuoteChange(ctx, sub, current, target)
	if err != nil {
		return nil, err
	}

	attempt.ChangeType = classifyChange(current, target)
	attempt.QuotedCharge = quote.Proration.ImmediateCharge

	switch {
	case attempt.ChangeType == types.PlanChangeTypeDowngrade:
		return s.confirmDowngrade(ctx, attempt, sub, target, quote, req)
	case attempt.ChangeType == types.PlanChangeTypeUpgrade,
		quote.Proration.ImmediateCharge.GreaterThan(decimal.Zero):
		return s.confirmWithPayment(ctx, attempt, sub, target, quote, req)
	default:
		return s.confirmDirect(ctx, attempt, sub, target, quote)
	}
}

func (s *planChangeService) CancelChange(ctx context.Context, attemptID string) (*dto.PlanChangeResponse, error) {
	attempt, err := s.PlanChangeRepo.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	if err := attempt.Transition(types.PlanChangeStateCancelled); err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	attempt.CancelledAt = &now
	attempt.UpdatedAt = now
	attempt.UpdatedBy = types.GetUserID(ctx)

	if err := s.PlanChangeRepo.Update(ctx, attempt); err != nil {
		return nil, err
	}

	s.Logger.Infow("cancelled plan change", "attempt_id", attempt.ID)
	return &dto.PlanChangeResponse{Attempt: attempt}, nil
}

func (s *planChangeService) GetChange(ctx context.Context, attemptID string) (*dto.PlanChangeResponse, error) {
	attempt, err := s.PlanChangeRepo.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	return &dto.PlanChangeResponse{Attempt: attempt}, nil
}

// confirmWithPayment collects the immediate charge before switching the
// plan. The charged amount is always strictly positive: when the
// prorated delta rounds to zero or below, the full target price is
// collected instead.
func (s *planChangeService) confirmWithPayment(ctx context.Context, attempt *planchange.Attempt, sub *subscription.Subscription, target *plan.Plan, quote *proration.Quote, req dto.ConfirmPlanChangeRequest) (*dto.PlanChangeResponse, error) {
	if req.PaymentMethodID == "" {
		return nil, ierr.NewError("payment method is required").
			WithHint("This plan change collects an immediate charge and needs a payment method").
			Mark(ierr.ErrValidation)
	}

	amount := quote.Proration.ImmediateCharge
	if amount.LessThanOrEqual(decimal.Zero) {
		amount = target.Price
	}

	if attempt.State == types.PlanChangeStateQuoted {
		if err := attempt.Transition(types.PlanChangeStateAwaitingPayment); err != nil {
			return nil, err
		}
		if err := s.PlanChangeRepo.Update(ctx, attempt); err != nil {
			return nil, err
		}
	}

	currency := target.Currency
	if currency == "" {
		currency = s.Config.Billing.Currency
	}

	result, err := s.Gateway.Charge(ctx, payment.ChargeRequest{
		Amount:          amount,
		Currency:        currency,
		PaymentMethodID: req.PaymentMethodID,
		Description:     fmt.Sprintf("Cambio de plan a %s", target.Name),
		Metadata: map[string]string{
			"subscription_id": sub.ID,
			"plan_change_id":  attempt.ID,
			"target_plan_id":  target.ID,
		},
	})
	if err != nil {
		if revertErr := s.revertToQuoted(ctx, attempt); revertErr != nil {
			s.Logger.Errorw("failed to revert plan change after gateway error",
				"attempt_id", attempt.ID, "error", revertErr)
		}
		return nil, err
	}

	pay := &payment.Payment{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		SubscriptionID:  sub.ID,
		PlanID:          target.ID,
		Amount:          amount,
		Currency:        currency,
		PaymentMethodID: req.PaymentMethodID,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}

	now := s.Clock.Now()
	if !result.Succeeded {
		pay.PaymentStatus = types.PaymentStatusFailed
		pay.FailedAt = &now
		if result.FailureMessage != "" {
			pay.ErrorMessage = &result.FailureMessage
		}
		if err := s.PaymentRepo.Create(ctx, pay); err != nil {
			return nil, err
		}
		if err := s.revertToQuoted(ctx, attempt); err != nil {
			return nil, err
		}

		s.Logger.Warnw("plan change payment declined",
			"attempt_id", attempt.ID,
			"payment_id", pay.ID,
			"reason", result.FailureMessage)

		return nil, ierr.NewError("payment was declined").
			WithHint("El pago fue rechazado. Intenta con otro medio de pago.").
			WithReportableDetails(map[string]any{
				"attempt_id": attempt.ID,
				"payment_id": pay.ID,
			}).
			Mark(ierr.ErrPaymentFailed)
	}

	pay.PaymentStatus = types.PaymentStatusSucceeded
	pay.SucceededAt = &now
	if result.GatewayPaymentID != "" {
		pay.GatewayPaymentID = &result.GatewayPaymentID
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.PaymentRepo.Create(txCtx, pay); err != nil {
			return err
		}
		attempt.PaymentID = &pay.ID
		return s.finalize(txCtx, attempt, sub, target, quote)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("confirmed plan change with payment",
		"attempt_id", attempt.ID,
		"payment_id", pay.ID,
		"amount", amount)

	return &dto.PlanChangeResponse{Attempt: attempt, Quote: quote}, nil
}

// confirmDowngrade requires the explicit risk acknowledgment before
// switching. No money moves in either direction.
func (s *planChangeService) confirmDowngrade(ctx context.Context, attempt *planchange.Attempt, sub *subscription.Subscription, target *plan.Plan, quote *proration.Quote, req dto.ConfirmPlanChangeRequest) (*dto.PlanChangeResponse, error) {
	if !req.Acknowledged {
		if attempt.State == types.PlanChangeStateQuoted {
			if err := attempt.Transition(types.PlanChangeStateAwaitingAck); err != nil {
				return nil, err
			}
			if err := s.PlanChangeRepo.Update(ctx, attempt); err != nil {
				return nil, err
			}
		}
		return nil, ierr.NewError("downgrade requires acknowledgment").
			WithHint("Debes aceptar las condiciones del cambio de plan antes de confirmar").
			Mark(ierr.ErrInvalidOperation)
	}

	if attempt.State == types.PlanChangeStateQuoted {
		if err := attempt.Transition(types.PlanChangeStateAwaitingAck); err != nil {
			return nil, err
		}
	}
	attempt.Acknowledged = true

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.finalize(txCtx, attempt, sub, target, quote)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("confirmed downgrade",
		"attempt_id", attempt.ID,
		"subscription_id", sub.ID,
		"target_plan_id", target.ID)

	return &dto.PlanChangeResponse{Attempt: attempt, Quote: quote}, nil
}

// confirmDirect closes a lateral change with no money owed.
func (s *planChangeService) confirmDirect(ctx context.Context, attempt *planchange.Attempt, sub *subscription.Subscription, target *plan.Plan, quote *proration.Quote) (*dto.PlanChangeResponse, error) {
	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.finalize(txCtx, attempt, sub, target, quote)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("confirmed lateral plan change",
		"attempt_id", attempt.ID,
		"subscription_id", sub.ID)

	return &dto.PlanChangeResponse{Attempt: attempt, Quote: quote}, nil
}

// finalize moves the attempt to confirmed and persists the plan switch
// and the rolled billing dates on the subscription.
func (s *planChangeService) finalize(ctx context.Context, attempt *planchange.Attempt, sub *subscription.Subscription, target *plan.Plan, quote *proration.Quote) error {
	if err := attempt.Transition(types.PlanChangeStateConfirmed); err != nil {
		return err
	}

	now := s.Clock.Now()
	attempt.ConfirmedAt = &now
	attempt.UpdatedAt = now
	attempt.UpdatedBy = types.GetUserID(ctx)

	if err := s.PlanChangeRepo.Update(ctx, attempt); err != nil {
		return err
	}

	nextBilling := quote.Proration.NextBillingDate
	sub.PlanID = target.ID
	sub.NextPaymentDate = &nextBilling
	sub.UpdatedAt = now
	sub.UpdatedBy = types.GetUserID(ctx)

	return s.SubRepo.Update(ctx, sub)
}

// revertToQuoted is the payment-failure recovery path. The attempt stays
// open so the user can retry or cancel.
func (s *planChangeService) revertToQuoted(ctx context.Context, attempt *planchange.Attempt) error {
	if err := attempt.Transition(types.PlanChangeStateQuoted); err != nil {
		return err
	}
	attempt.UpdatedAt = s.Clock.Now()
	attempt.UpdatedBy = types.GetUserID(ctx)
	return s.PlanChangeRepo.Update(ctx, attempt)
}

// loadChangeContext resolves the subscription, its current plan and the
// target plan, failing closed on anything inactive or missing.
func (s *planChangeService) loadChangeContext(ctx context.Context, subscriptionID, targetPlanID string) (*subscription.Subscription, *plan.Plan, *plan.Plan, error) {
	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !sub.IsActive() {
		return nil, nil, nil, ierr.NewError("subscription is not active").
			WithHintf("Plan changes are not allowed while the subscription is %s", sub.SubscriptionStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	current, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, nil, nil, err
	}
	target, err := s.PlanRepo.Get(ctx, targetPlanID)
	if err != nil {
		return nil, nil, nil, err
	}

	return sub, current, target, nil
}

// classifyChange compares flat monthly prices. The proration sign is not
// consulted here; a change is an upgrade whenever the target's full
// price is higher.
func classifyChange(current, target *plan.Plan) types.PlanChangeType {
	switch {
	case target.Price.GreaterThan(current.Price):
		return types.PlanChangeTypeUpgrade
	case target.Price.LessThan(current.Price):
		return types.PlanChangeTypeDowngrade
	default:
		return types.PlanChangeTypeLateral
	}
}

// downgradeWarnings builds the risk list shown before a downgrade is
// acknowledged. Upgrades and laterals carry no warnings.
func (s *planChangeService) downgradeWarnings(changeType types.PlanChangeType, current, target *plan.Plan) ([]string, error) {
	if changeType != types.PlanChangeTypeDowngrade {
		return nil, nil
	}

	lost, err := s.FeatureTable.Diff(current.Tier, target.Tier)
	if err != nil {
		return nil, err
	}

	warnings := []string{
		"El tiempo restante de tu período actual no se reembolsa.",
	}
	if lost.GalleryReduced {
		warnings = append(warnings, fmt.Sprintf(
			"Las piezas de tu galería que superen el nuevo límite de %d se ocultarán, no se eliminarán.",
			lost.NewGalleryLimit))
	}
	if lost.Calendar {
		warnings = append(warnings,
			"Perderás el acceso al calendario de citas y tus reservas existentes quedarán sin agenda.")
	}
	if lost.ProposalsReduced {
		warnings = append(warnings,
			"Tu cupo de propuestas mensuales se reducirá con el nuevo plan.")
	}
	if lost.Featured {
		warnings = append(warnings,
			"Tu perfil dejará de aparecer como destacado en las búsquedas.")
	}

	return warnings, nil
}
