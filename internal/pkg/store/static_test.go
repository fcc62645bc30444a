package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/pkg/constants"
)

func newStatic(t *testing.T) Store {
	t.Helper()
	s, err := NewStaticStore()
	require.NoError(t, err)
	return s
}

func TestStaticStoreGetLocation(t *testing.T) {
	s := newStatic(t)

	loc, err := s.GetLocation(context.Background(), "Shanghai")
	require.NoError(t, err)
	assert.Equal(t, "Shanghai", loc.Name)
	assert.Equal(t, "ASIA", loc.Region)
	assert.True(t, loc.HasPort)

	lower, err := s.GetLocation(context.Background(), "sHaNgHaI")
	require.NoError(t, err)
	assert.Equal(t, loc.Name, lower.Name)

	_, err = s.GetLocation(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestStaticStoreListLocationsSorted(t *testing.T) {
	s := newStatic(t)

	locs, err := s.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 8)

	for i := 1; i < len(locs); i++ {
		assert.Less(t, locs[i-1].Name, locs[i].Name)
	}
}

func TestStaticStoreRouteOptions(t *testing.T) {
	s := newStatic(t)

	options, err := s.ListRouteOptions(context.Background(), "Shanghai", "Berlin")
	require.NoError(t, err)
	require.Len(t, options, 3)

	seaRail := options[0]
	assert.Equal(t, "sh-ber-sea-rail", seaRail.ID)
	assert.InDelta(t, 1900.0, seaRail.BaseCostUSD, 1e-9)
	require.Len(t, seaRail.Segments, 2)
	assert.Equal(t, domain.ModeSea, seaRail.Segments[0].Mode)
	assert.Equal(t, domain.ModeRail, seaRail.Segments[1].Mode)

	// Pairs are keyed case-insensitively and only in the stored direction.
	reversed, err := s.ListRouteOptions(context.Background(), "Berlin", "Shanghai")
	require.NoError(t, err)
	assert.Empty(t, reversed)
}

func TestStaticStoreEmissionFactors(t *testing.T) {
	s := newStatic(t)

	for mode, want := range map[domain.TransportMode]float64{
		domain.ModeSea:   0.010,
		domain.ModeRail:  0.022,
		domain.ModeTruck: 0.105,
		domain.ModeAir:   0.500,
	} {
		f, err := s.EmissionFactor(context.Background(), mode)
		require.NoError(t, err)
		assert.InDelta(t, want, f.KgPerTonKm, 1e-9, "mode %s", mode)
	}

	_, err := s.EmissionFactor(context.Background(), domain.TransportMode("teleport"))
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestStaticStoreRegulationsForRegions(t *testing.T) {
	s := newStatic(t)

	regs, err := s.RegulationsForRegions(context.Background(), []string{"ASIA", "EU", "EU"})
	require.NoError(t, err)

	ids := make([]string, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.ID)
	}
	// Duplicate regions collapse; results are ID-sorted for determinism.
	assert.Equal(t, []string{"asia-carbon-levy", "eu-ets-2024", "eu-green-corridor"}, ids)
}

func TestStaticStoreListCredits(t *testing.T) {
	s := newStatic(t)

	credits, err := s.ListCredits(context.Background())
	require.NoError(t, err)
	require.Len(t, credits, 5)

	byID := map[string]domain.CarbonCredit{}
	for _, c := range credits {
		byID[c.ID] = c
	}
	wind, ok := byID["cc-wind-india"]
	require.True(t, ok)
	assert.Equal(t, domain.TierStandard, wind.QualityTier)
	assert.InDelta(t, 8.0, wind.PricePerTonUSD, 1e-9)
}
