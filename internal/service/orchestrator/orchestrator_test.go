package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/domain/dto"
	"github.com/terraship/carbonroute/internal/pkg/constants"
	"github.com/terraship/carbonroute/internal/service/optimizer"
	"github.com/terraship/carbonroute/internal/sources/sourcetest"
)

func candidate(id string, cost, days, reliability float64) domain.RouteCandidate {
	return domain.RouteCandidate{
		ID:          id,
		Name:        id,
		Segments:    []domain.Segment{{From: "A", To: "B", Mode: domain.ModeSea, DistanceKm: 1000}},
		BaseCostUSD: cost,
		TransitDays: days,
		Reliability: reliability,
	}
}

func fixtureCandidates() []domain.RouteCandidate {
	return []domain.RouteCandidate{
		candidate("slow", 1900, 20, 0.92),
		candidate("mid", 2500, 18, 0.88),
		candidate("fast", 8150, 2, 0.97),
	}
}

func fixtureEmissions() map[string]domain.EmissionsRecord {
	return map[string]domain.EmissionsRecord{
		"slow": {RouteID: "slow", TotalEmissionsKg: 450, Category: domain.EmissionLow},
		"mid":  {RouteID: "mid", TotalEmissionsKg: 680, Category: domain.EmissionMedium},
		"fast": {RouteID: "fast", TotalEmissionsKg: 4200, Category: domain.EmissionHigh},
	}
}

func fixtureCompliance() map[string]domain.ComplianceRecord {
	return map[string]domain.ComplianceRecord{
		"slow": {RouteID: "slow", Status: domain.StatusCompliant},
		"mid":  {RouteID: "mid", Status: domain.StatusCompliant},
		"fast": {RouteID: "fast", Status: domain.StatusCompliantWithOffset, RegulatoryCostUSD: 304},
	}
}

func newTestService(routes sourcetest.StubRoutes, emissions sourcetest.StubEmissions, compliance sourcetest.StubCompliance) *Service {
	return NewService(
		routes, emissions, compliance,
		optimizer.NewEngine(nil),
		200*time.Millisecond, time.Second,
	)
}

func validRequest() dto.OptimizeRequest {
	return dto.OptimizeRequest{
		Origin:      "Shanghai",
		Destination: "Berlin",
		Weight:      10,
		Priority:    "balanced",
	}
}

func TestOptimizeHappyPath(t *testing.T) {
	svc := newTestService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{Records: fixtureEmissions()},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
	)

	result, err := svc.Optimize(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Recommendation)

	assert.Equal(t, "slow", result.Recommendation.RecommendedRoute.ID)
	assert.Len(t, result.Recommendation.Alternatives, 2)

	// One route stage, two analysis lines per candidate, one optimizer line.
	assert.Len(t, result.StageLog, 1+2*3+1)
	assert.Equal(t, "route", result.StageLog[0].Stage)
	assert.Equal(t, "optimizer", result.StageLog[len(result.StageLog)-1].Stage)
}

func TestOptimizeRejectsInvalidRequest(t *testing.T) {
	svc := newTestService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{Records: fixtureEmissions()},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
	)

	for name, req := range map[string]dto.OptimizeRequest{
		"unknown priority": {Origin: "A", Destination: "B", Weight: 10, Priority: "fastest"},
		"zero weight":      {Origin: "A", Destination: "B", Weight: 0, Priority: "cost"},
		"negative weight":  {Origin: "A", Destination: "B", Weight: -3, Priority: "cost"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Optimize(context.Background(), req)
			assert.ErrorIs(t, err, constants.ErrInvalidRequest)
		})
	}
}

func TestOptimizeNoRoutesFound(t *testing.T) {
	svc := newTestService(
		sourcetest.StubRoutes{Candidates: nil},
		sourcetest.StubEmissions{Records: fixtureEmissions()},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
	)

	result, err := svc.Optimize(context.Background(), validRequest())
	assert.ErrorIs(t, err, constants.ErrNoRoutesFound)
	require.NotNil(t, result)
	assert.Nil(t, result.Recommendation)
	assert.NotEmpty(t, result.StageLog)
}

func TestOptimizeRouteSourceFailureIsFatal(t *testing.T) {
	svc := newTestService(
		sourcetest.StubRoutes{Err: errors.New("upstream unavailable")},
		sourcetest.StubEmissions{Records: fixtureEmissions()},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
	)

	_, err := svc.Optimize(context.Background(), validRequest())
	assert.ErrorIs(t, err, constants.ErrNoRoutesFound)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestOptimizeEmissionsFailureDropsCandidate(t *testing.T) {
	svc := newTestService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{
			Records: fixtureEmissions(),
			Fail:    map[string]error{"mid": errors.New("model refused")},
		},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
	)

	result, err := svc.Optimize(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Recommendation)

	ids := []string{result.Recommendation.RecommendedRoute.ID}
	for _, alt := range result.Recommendation.Alternatives {
		ids = append(ids, alt.ID)
	}
	assert.ElementsMatch(t, []string{"slow", "fast"}, ids)
}

func TestOptimizeComplianceFailureDegradesToDefault(t *testing.T) {
	svc := newTestService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{Records: fixtureEmissions()},
		sourcetest.StubCompliance{
			Records: fixtureCompliance(),
			Fail:    map[string]error{"fast": errors.New("regulator offline")},
		},
	)

	result, err := svc.Optimize(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Recommendation)

	var fast *domain.RankedRoute
	for i := range result.Recommendation.Alternatives {
		if result.Recommendation.Alternatives[i].ID == "fast" {
			fast = &result.Recommendation.Alternatives[i]
		}
	}
	require.NotNil(t, fast)

	assert.True(t, fast.Compliance.Degraded)
	assert.Equal(t, domain.StatusCompliant, fast.Compliance.Status)
	assert.Zero(t, fast.Compliance.RegulatoryCostUSD)
	assert.InDelta(t, fast.BaseCostUSD, fast.TotalCostUSD, 1e-9)
}

func TestOptimizeAllCandidatesFailing(t *testing.T) {
	failAll := map[string]error{
		"slow": errors.New("boom"),
		"mid":  errors.New("boom"),
		"fast": errors.New("boom"),
	}
	svc := newTestService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{Records: fixtureEmissions(), Fail: failAll},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
	)

	result, err := svc.Optimize(context.Background(), validRequest())
	assert.ErrorIs(t, err, constants.ErrNoViableRoutes)
	require.NotNil(t, result)
	assert.Nil(t, result.Recommendation)
}

func TestOptimizeSlowSourceHitsPerCallTimeout(t *testing.T) {
	svc := NewService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{Records: fixtureEmissions(), Delay: 300 * time.Millisecond},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
		optimizer.NewEngine(nil),
		50*time.Millisecond, 5*time.Second,
	)

	result, err := svc.Optimize(context.Background(), validRequest())
	assert.ErrorIs(t, err, constants.ErrNoViableRoutes)
	require.NotNil(t, result)

	var sawTimeout bool
	for _, entry := range result.StageLog {
		if entry.Stage == "emissions" && strings.Contains(entry.Message, "SourceTimeout") {
			sawTimeout = true
		}
	}
	assert.True(t, sawTimeout)
}

func TestOptimizeResultDeterministicUnderCompletionOrder(t *testing.T) {
	// Slow compliance calls finish after the emissions calls; the merged
	// ranking must not depend on completion order.
	baseline := newTestService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{Records: fixtureEmissions()},
		sourcetest.StubCompliance{Records: fixtureCompliance()},
	)
	delayed := newTestService(
		sourcetest.StubRoutes{Candidates: fixtureCandidates()},
		sourcetest.StubEmissions{Records: fixtureEmissions()},
		sourcetest.StubCompliance{Records: fixtureCompliance(), Delay: 30 * time.Millisecond},
	)

	want, err := baseline.Optimize(context.Background(), validRequest())
	require.NoError(t, err)
	got, err := delayed.Optimize(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, want.Recommendation.RecommendedRoute.ID, got.Recommendation.RecommendedRoute.ID)
	require.Len(t, got.Recommendation.Alternatives, len(want.Recommendation.Alternatives))
	for i := range want.Recommendation.Alternatives {
		assert.Equal(t, want.Recommendation.Alternatives[i].ID, got.Recommendation.Alternatives[i].ID)
		assert.InDelta(t, want.Recommendation.Alternatives[i].Score, got.Recommendation.Alternatives[i].Score, 1e-9)
	}
}
