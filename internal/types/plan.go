package types

import (
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/samber/lo"
)

// PlanTier is a named plan level. Higher tiers carry a strict superset
// of the features of the tiers below them.
type PlanTier string

const (
	PlanTierBasic   PlanTier = "basic"
	PlanTierPremium PlanTier = "premium"
	PlanTierPro     PlanTier = "pro"
)

var PlanTierValues = []PlanTier{
	PlanTierBasic,
	PlanTierPremium,
	PlanTierPro,
}

func (t PlanTier) Validate() error {
	if !lo.Contains(PlanTierValues, t) {
		return ierr.NewError("invalid plan tier").
			WithHint("Plan tier must be basic, premium, or pro").
			WithReportableDetails(map[string]any{
				"allowed_values": PlanTierValues,
				"provided_value": t,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (t PlanTier) String() string {
	return string(t)
}
