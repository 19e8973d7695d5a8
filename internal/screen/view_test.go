package screen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

var testProduct = entity.Product{
	ID:           "app.raceday.pro.lifetime",
	DisplayName:  "RaceDay Pro",
	DisplayPrice: "$14.99",
}

func TestRenderPurchaseSection(t *testing.T) {
	t.Run("pro user always gets the already-pro layout", func(t *testing.T) {
		variants := []struct {
			name     string
			products []entity.Product
			loading  bool
		}{
			{"with products", []entity.Product{testProduct}, false},
			{"empty and loading", nil, true},
			{"empty and idle", nil, false},
			{"with products while loading", []entity.Product{testProduct}, true},
		}
		for _, tc := range variants {
			t.Run(tc.name, func(t *testing.T) {
				section := renderPurchaseSection(State{}, true, tc.products, tc.loading, nil)
				assert.Equal(t, SectionAlreadyPro, section.Kind)
			})
		}
	})

	t.Run("non-empty catalog gets the ready layout", func(t *testing.T) {
		section := renderPurchaseSection(State{}, false, []entity.Product{testProduct}, false, nil)
		assert.Equal(t, SectionReady, section.Kind)
		require.NotNil(t, section.Product)
		assert.Equal(t, testProduct, *section.Product)
		assert.False(t, section.ButtonDisabled)
		assert.False(t, section.ButtonBusy)
	})

	t.Run("button is disabled iff purchasing or loading", func(t *testing.T) {
		cases := []struct {
			purchasing, loading, want bool
		}{
			{false, false, false},
			{true, false, true},
			{false, true, true},
			{true, true, true},
		}
		for _, tc := range cases {
			section := renderPurchaseSection(State{IsPurchasing: tc.purchasing}, false, []entity.Product{testProduct}, tc.loading, nil)
			assert.Equal(t, tc.want, section.ButtonDisabled)
			assert.Equal(t, tc.want, section.ButtonBusy)
		}
	})

	t.Run("empty catalog while loading shows the loading layout", func(t *testing.T) {
		section := renderPurchaseSection(State{}, false, nil, true, nil)
		assert.Equal(t, SectionLoading, section.Kind)
	})

	t.Run("empty catalog when idle shows the load-error layout", func(t *testing.T) {
		section := renderPurchaseSection(State{}, false, nil, false, nil)
		assert.Equal(t, SectionLoadError, section.Kind)
	})
}

func TestBadgeFor(t *testing.T) {
	assert.Nil(t, badgeFor(nil))

	cases := []struct {
		phase entity.TransactionPhase
		icon  string
		tone  string
	}{
		{entity.TransactionPurchased, "checkmark.circle.fill", "green"},
		{entity.TransactionRestored, "checkmark.circle.fill", "green"},
		{entity.TransactionFailed, "xmark.circle.fill", "red"},
		{entity.TransactionPending, "clock.fill", "amber"},
		{entity.TransactionDeferred, "clock.fill", "amber"},
	}
	for _, tc := range cases {
		t.Run(string(tc.phase), func(t *testing.T) {
			badge := badgeFor(&entity.TransactionState{Phase: tc.phase, Err: errors.New("x")})
			require.NotNil(t, badge)
			assert.Equal(t, tc.icon, badge.Icon)
			assert.Equal(t, tc.tone, badge.Tone)
		})
	}
}

func TestRenderHero(t *testing.T) {
	free := renderHero(false)
	assert.Equal(t, "Upgrade to RaceDay Pro", free.Headline)

	pro := renderHero(true)
	assert.Equal(t, "You're a Pro", pro.Headline)
	assert.NotEqual(t, free.Icon, pro.Icon)
}

func TestRenderFeatures(t *testing.T) {
	locked := renderFeatures(false)
	require.Len(t, locked, len(entity.ProFeatures))
	for i, row := range locked {
		assert.False(t, row.Unlocked)
		assert.Equal(t, entity.ProFeatures[i].Icon, row.Icon)
	}

	unlocked := renderFeatures(true)
	for _, row := range unlocked {
		assert.True(t, row.Unlocked)
		assert.Equal(t, "checkmark.circle.fill", row.Icon)
	}
}
