package dto

import (
	"context"

	"github.com/inkmatch/inkmatch/internal/domain/plan"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/inkmatch/inkmatch/internal/validator"
	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	Name        string `json:"name" validate:"required"`
	LookupKey   string `json:"lookup_key"`
	Description string `json:"description"`
	Tier        string `json:"tier" validate:"required"`
	// Price is the flat monthly amount as a decimal string. Parsed and
	// rejected here so malformed catalog data never reaches the
	// calculator.
	Price    string `json:"price" validate:"required"`
	Currency string `json:"currency"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := types.PlanTier(r.Tier).Validate(); err != nil {
		return err
	}

	if _, err := parsePrice(r.Price); err != nil {
		return err
	}

	return nil
}

func (r *CreatePlanRequest) ToPlan(ctx context.Context) (*plan.Plan, error) {
	price, err := parsePrice(r.Price)
	if err != nil {
		return nil, err
	}

	return &plan.Plan{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:        r.Name,
		LookupKey:   r.LookupKey,
		Description: r.Description,
		Tier:        types.PlanTier(r.Tier),
		Price:       price,
		Currency:    r.Currency,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}, nil
}

// parsePrice parses a catalog price string, rejecting anything that is
// not a non-negative decimal.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("Plan price '%s' is not a valid number", raw).
			Mark(ierr.ErrValidation)
	}
	if price.IsNegative() {
		return decimal.Zero, ierr.NewError("plan price cannot be negative").
			WithReportableDetails(map[string]any{"price": raw}).
			Mark(ierr.ErrValidation)
	}
	return price, nil
}

type PlanResponse struct {
	*plan.Plan
}

type ListPlansResponse struct {
	Items []*PlanResponse `json:"items"`
	Total int             `json:"total"`
}
