package plan

import (
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/types"
)

// Unlimited marks a limit with no cap.
const Unlimited = -1

// FeatureSet lists the capabilities a plan tier grants an artist.
type FeatureSet struct {
	// CalendarAccess enables the appointment calendar. Existing bookings
	// survive a downgrade but become orphaned from the scheduling feature.
	CalendarAccess bool `json:"calendar_access"`
	// GalleryLimit caps visible portfolio items; Unlimited for no cap.
	// Items beyond the cap are hidden, not deleted, on downgrade.
	GalleryLimit int `json:"gallery_limit"`
	// MonthlyProposals caps proposals sent per month; Unlimited for no cap.
	MonthlyProposals int `json:"monthly_proposals"`
	// FeaturedProfile promotes the artist in browse results.
	FeaturedProfile bool `json:"featured_profile"`
}

// FeatureTable maps plan tiers to their feature sets. It is an injected,
// read-only collaborator: the plan-change policy queries it to build
// downgrade warnings but does not own it, and tests substitute custom
// tables freely.
type FeatureTable struct {
	features map[types.PlanTier]FeatureSet
}

// NewFeatureTable builds a table from an explicit tier map.
func NewFeatureTable(features map[types.PlanTier]FeatureSet) *FeatureTable {
	copied := make(map[types.PlanTier]FeatureSet, len(features))
	for tier, fs := range features {
		copied[tier] = fs
	}
	return &FeatureTable{features: copied}
}

// DefaultFeatureTable returns the production tier ladder. Each tier is a
// strict superset of the one below it.
func DefaultFeatureTable() *FeatureTable {
	return NewFeatureTable(map[types.PlanTier]FeatureSet{
		types.PlanTierBasic: {
			CalendarAccess:   false,
			GalleryLimit:     10,
			MonthlyProposals: 5,
			FeaturedProfile:  false,
		},
		types.PlanTierPremium: {
			CalendarAccess:   true,
			GalleryLimit:     50,
			MonthlyProposals: 30,
			FeaturedProfile:  false,
		},
		types.PlanTierPro: {
			CalendarAccess:   true,
			GalleryLimit:     Unlimited,
			MonthlyProposals: Unlimited,
			FeaturedProfile:  true,
		},
	})
}

// Features returns the feature set for a tier.
func (t *FeatureTable) Features(tier types.PlanTier) (FeatureSet, error) {
	fs, ok := t.features[tier]
	if !ok {
		return FeatureSet{}, ierr.NewError("unknown plan tier").
			WithHintf("No feature set configured for tier '%s'", tier).
			Mark(ierr.ErrNotFound)
	}
	return fs, nil
}

// exceeds reports whether limit a allows more than limit b.
func exceeds(a, b int) bool {
	if a == Unlimited {
		return b != Unlimited
	}
	return b != Unlimited && a > b
}

// LostFeatures describes what moving from one tier to another takes away.
type LostFeatures struct {
	Calendar         bool
	GalleryReduced   bool
	OldGalleryLimit  int
	NewGalleryLimit  int
	ProposalsReduced bool
	Featured         bool
}

// Diff computes the capabilities lost when switching from tier from to
// tier to. An upgrade yields a zero LostFeatures.
func (t *FeatureTable) Diff(from, to types.PlanTier) (LostFeatures, error) {
	oldFS, err := t.Features(from)
	if err != nil {
		return LostFeatures{}, err
	}
	newFS, err := t.Features(to)
	if err != nil {
		return LostFeatures{}, err
	}

	return LostFeatures{
		Calendar:         oldFS.CalendarAccess && !newFS.CalendarAccess,
		GalleryReduced:   exceeds(oldFS.GalleryLimit, newFS.GalleryLimit),
		OldGalleryLimit:  oldFS.GalleryLimit,
		NewGalleryLimit:  newFS.GalleryLimit,
		ProposalsReduced: exceeds(oldFS.MonthlyProposals, newFS.MonthlyProposals),
		Featured:         oldFS.FeaturedProfile && !newFS.FeaturedProfile,
	}, nil
}
