package plan

import (
	"testing"

	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureTable_Diff(t *testing.T) {
	table := DefaultFeatureTable()

	t.Run("pro_to_basic_loses_everything", func(t *testing.T) {
		lost, err := table.Diff(types.PlanTierPro, types.PlanTierBasic)
		require.NoError(t, err)
		assert.True(t, lost.Calendar)
		assert.True(t, lost.GalleryReduced)
		assert.Equal(t, Unlimited, lost.OldGalleryLimit)
		assert.Equal(t, 10, lost.NewGalleryLimit)
		assert.True(t, lost.ProposalsReduced)
		assert.True(t, lost.Featured)
	})

	t.Run("premium_to_basic_loses_calendar", func(t *testing.T) {
		lost, err := table.Diff(types.PlanTierPremium, types.PlanTierBasic)
		require.NoError(t, err)
		assert.True(t, lost.Calendar)
		assert.True(t, lost.GalleryReduced)
		assert.False(t, lost.Featured)
	})

	t.Run("upgrade_loses_nothing", func(t *testing.T) {
		lost, err := table.Diff(types.PlanTierBasic, types.PlanTierPro)
		require.NoError(t, err)
		assert.Equal(t, LostFeatures{OldGalleryLimit: 10, NewGalleryLimit: Unlimited}, lost)
	})

	t.Run("unknown_tier", func(t *testing.T) {
		_, err := table.Diff(types.PlanTier("platinum"), types.PlanTierBasic)
		require.Error(t, err)
	})
}

func TestFeatureTable_Injected(t *testing.T) {
	// custom tables substitute cleanly, no global state involved
	custom := NewFeatureTable(map[types.PlanTier]FeatureSet{
		types.PlanTierBasic:   {CalendarAccess: true, GalleryLimit: 5},
		types.PlanTierPremium: {CalendarAccess: false, GalleryLimit: 3},
	})

	lost, err := custom.Diff(types.PlanTierBasic, types.PlanTierPremium)
	require.NoError(t, err)
	assert.True(t, lost.Calendar)
	assert.True(t, lost.GalleryReduced)
}

func TestDefaultFeatureTable_TiersAreSupersets(t *testing.T) {
	table := DefaultFeatureTable()
	ladder := []types.PlanTier{types.PlanTierBasic, types.PlanTierPremium, types.PlanTierPro}

	for i := 1; i < len(ladder); i++ {
		lost, err := table.Diff(ladder[i-1], ladder[i])
		require.NoError(t, err)
		assert.False(t, lost.Calendar, "%s -> %s", ladder[i-1], ladder[i])
		assert.False(t, lost.GalleryReduced, "%s -> %s", ladder[i-1], ladder[i])
		assert.False(t, lost.ProposalsReduced, "%s -> %s", ladder[i-1], ladder[i])
		assert.False(t, lost.Featured, "%s -> %s", ladder[i-1], ladder[i])
	}
}
