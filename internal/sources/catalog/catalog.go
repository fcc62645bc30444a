// Package catalog implements the three analysis sources deterministically
// on top of the reference-data store. It is the default backend and the one
// exercised by the integration tests; the gemini package provides the
// LLM-backed alternative.
package catalog

import (
	"context"
	"fmt"

	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

// FindRoutes validates both endpoints against the location table and returns
// the catalog's route options for the pair. A pair with no options returns an
// empty slice; the orchestrator owns the NoRoutesFound decision.
func (s *Service) FindRoutes(ctx context.Context, origin, destination string, _ float64) ([]domain.RouteCandidate, error) {
	if _, err := s.store.GetLocation(ctx, origin); err != nil {
		return nil, fmt.Errorf("find routes: origin %q: %w", origin, err)
	}
	if _, err := s.store.GetLocation(ctx, destination); err != nil {
		return nil, fmt.Errorf("find routes: destination %q: %w", destination, err)
	}

	options, err := s.store.ListRouteOptions(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("find routes: list options: %w", err)
	}
	return options, nil
}

// EstimateEmissions computes per-segment emissions as
// factor(mode) × distance_km × weight_tons and buckets the total.
func (s *Service) EstimateEmissions(ctx context.Context, candidate domain.RouteCandidate, weightTons float64) (domain.EmissionsRecord, error) {
	record := domain.EmissionsRecord{
		RouteID:   candidate.ID,
		Breakdown: make([]domain.SegmentEmissions, 0, len(candidate.Segments)),
	}

	for _, seg := range candidate.Segments {
		factor, err := s.store.EmissionFactor(ctx, seg.Mode)
		if err != nil {
			return domain.EmissionsRecord{}, fmt.Errorf("estimate emissions: route %s segment %s->%s: %w", candidate.ID, seg.From, seg.To, err)
		}

		kg := factor.KgPerTonKm * seg.DistanceKm * weightTons
		record.TotalEmissionsKg += kg
		record.Breakdown = append(record.Breakdown, domain.SegmentEmissions{
			From:        seg.From,
			To:          seg.To,
			Mode:        seg.Mode,
			DistanceKm:  seg.DistanceKm,
			EmissionsKg: kg,
		})
	}

	record.Category = domain.CategoryForEmissions(record.TotalEmissionsKg)
	return record, nil
}
