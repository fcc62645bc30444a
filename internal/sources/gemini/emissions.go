package gemini

import (
	"context"
	"fmt"

	"github.com/terraship/carbonroute/internal/domain"
)

const emissionsSystemPrompt = `You are an environmental scientist estimating
shipping emissions. For each route segment compute
emissions_kg = factor_kg_per_ton_km * distance_km * weight_tons using the
provided emission factors, then sum the segments and categorize the total as
"low" (< 500 kg), "medium" (< 2000 kg) or "high".
Reply with JSON matching:
{"route_id": "...", "total_emissions_kg": 0, "category": "low",
 "breakdown_by_segment": [{"from": "...", "to": "...", "mode": "...",
 "distance_km": 0, "emissions_kg": 0}]}.`

func (s *Service) EstimateEmissions(ctx context.Context, candidate domain.RouteCandidate, weightTons float64) (domain.EmissionsRecord, error) {
	factors := make([]domain.EmissionFactor, 0, len(candidate.Segments))
	for _, mode := range candidate.Modes() {
		f, err := s.store.EmissionFactor(ctx, mode)
		if err != nil {
			return domain.EmissionsRecord{}, fmt.Errorf("estimate emissions: factor %q: %w", mode, err)
		}
		factors = append(factors, f)
	}

	prompt := fmt.Sprintf(
		"Route:\n%s\nCargo weight: %.1f tons.\nEmission factors:\n%s",
		marshalForPrompt(candidate), weightTons, marshalForPrompt(factors),
	)

	var record domain.EmissionsRecord
	if err := s.generateJSON(ctx, emissionsSystemPrompt, prompt, &record); err != nil {
		return domain.EmissionsRecord{}, fmt.Errorf("estimate emissions: %w", err)
	}

	// The record must reference the candidate it was asked about.
	record.RouteID = candidate.ID
	if record.TotalEmissionsKg < 0 {
		return domain.EmissionsRecord{}, fmt.Errorf("estimate emissions: model returned negative total for route %s", candidate.ID)
	}
	record.Category = domain.CategoryForEmissions(record.TotalEmissionsKg)
	return record, nil
}
