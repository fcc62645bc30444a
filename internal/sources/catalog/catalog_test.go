package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/pkg/constants"
	"github.com/terraship/carbonroute/internal/pkg/store"
)

func newCatalog(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewStaticStore()
	require.NoError(t, err)
	return NewService(st)
}

func seaRailCandidate(t *testing.T) domain.RouteCandidate {
	t.Helper()
	candidates, err := newCatalog(t).FindRoutes(context.Background(), "Shanghai", "Berlin", 10)
	require.NoError(t, err)
	for _, c := range candidates {
		if c.ID == "sh-ber-sea-rail" {
			return c
		}
	}
	t.Fatal("sea-rail option missing from catalog")
	return domain.RouteCandidate{}
}

func TestFindRoutesReturnsCatalogOptions(t *testing.T) {
	svc := newCatalog(t)

	candidates, err := svc.FindRoutes(context.Background(), "Shanghai", "Berlin", 10)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"sh-ber-sea-rail", "sh-ber-sea-truck", "sh-ber-air"}, ids)
}

func TestFindRoutesIsCaseInsensitive(t *testing.T) {
	svc := newCatalog(t)

	candidates, err := svc.FindRoutes(context.Background(), "shanghai", "BERLIN", 10)
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
}

func TestFindRoutesUnknownLocation(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.FindRoutes(context.Background(), "Atlantis", "Berlin", 10)
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestFindRoutesUnservedPairIsEmptyNotError(t *testing.T) {
	svc := newCatalog(t)

	candidates, err := svc.FindRoutes(context.Background(), "Tokyo", "Berlin", 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestEstimateEmissionsPerSegment(t *testing.T) {
	svc := newCatalog(t)

	// 19800 km sea at 0.010 plus 290 km rail at 0.022, 10 tons.
	record, err := svc.EstimateEmissions(context.Background(), seaRailCandidate(t), 10)
	require.NoError(t, err)

	assert.Equal(t, "sh-ber-sea-rail", record.RouteID)
	assert.InDelta(t, 2043.8, record.TotalEmissionsKg, 1e-6)
	assert.Equal(t, domain.EmissionHigh, record.Category)

	require.Len(t, record.Breakdown, 2)
	assert.InDelta(t, 1980.0, record.Breakdown[0].EmissionsKg, 1e-6)
	assert.InDelta(t, 63.8, record.Breakdown[1].EmissionsKg, 1e-6)
}

func TestEstimateEmissionsScalesWithWeight(t *testing.T) {
	svc := newCatalog(t)
	candidate := seaRailCandidate(t)

	light, err := svc.EstimateEmissions(context.Background(), candidate, 1)
	require.NoError(t, err)
	heavy, err := svc.EstimateEmissions(context.Background(), candidate, 25)
	require.NoError(t, err)

	assert.InDelta(t, light.TotalEmissionsKg*25, heavy.TotalEmissionsKg, 1e-6)
}

func TestAssessComplianceCrossRegionCapsAndSubsidy(t *testing.T) {
	svc := newCatalog(t)

	// 2043.8 kg footprint at 10 tons crosses two cap regimes: the Asian
	// levy charges 0.5438 t over its 1.5 t threshold at $45, the EU ETS
	// 1.0438 t over 1.0 t at $95, and the green-corridor subsidy refunds
	// 5% of the $1900 base cost: 24.471 + 99.161 - 95 = 28.63.
	record, err := svc.AssessCompliance(context.Background(), seaRailCandidate(t), 10)
	require.NoError(t, err)

	assert.Equal(t, "sh-ber-sea-rail", record.RouteID)
	assert.Equal(t, domain.StatusCompliantWithOffset, record.Status)
	assert.False(t, record.Degraded)
	assert.InDelta(t, 28.63, record.RegulatoryCostUSD, 1e-9)
	assert.ElementsMatch(t, []string{"asia-carbon-levy", "eu-ets-2024", "eu-green-corridor"}, record.RegulationIDs)
}

func TestAssessCompliancePenaltyMakesNonCompliant(t *testing.T) {
	svc := newCatalog(t)

	// LA->NY truck at 25 tons: 4500 km * 0.105 * 25 = 11812.5 kg, 9.8125 t
	// over the 2 t US cap at $120/t penalty. No subsidy applies to trucks.
	candidates, err := svc.FindRoutes(context.Background(), "Los Angeles", "New York", 25)
	require.NoError(t, err)

	var truck domain.RouteCandidate
	for _, c := range candidates {
		if c.ID == "la-ny-truck" {
			truck = c
		}
	}
	require.NotEmpty(t, truck.ID)

	record, err := svc.AssessCompliance(context.Background(), truck, 25)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNonCompliant, record.Status)
	assert.InDelta(t, 1177.5, record.RegulatoryCostUSD, 1e-9)
	assert.Equal(t, []string{"us-clean-freight"}, record.RegulationIDs)
}

func TestAssessComplianceUnderAllThresholds(t *testing.T) {
	svc := newCatalog(t)

	// LA->NY rail at 1 ton: 4500 km * 0.022 = 99 kg, far under the 2 t cap.
	candidates, err := svc.FindRoutes(context.Background(), "Los Angeles", "New York", 1)
	require.NoError(t, err)

	var rail domain.RouteCandidate
	for _, c := range candidates {
		if c.ID == "la-ny-rail" {
			rail = c
		}
	}
	require.NotEmpty(t, rail.ID)

	record, err := svc.AssessCompliance(context.Background(), rail, 1)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompliant, record.Status)
	assert.Zero(t, record.RegulatoryCostUSD)
}
