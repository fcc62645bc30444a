package gemini

import (
	"context"
	"fmt"

	"github.com/terraship/carbonroute/internal/domain"
)

const complianceSystemPrompt = `You are a regulatory compliance expert for
international freight. First estimate the route's emissions from the provided
factors (factor_kg_per_ton_km * distance_km * weight_tons per segment), then
evaluate the regulations: emission caps charge their per-ton cost (or
penalty) on emissions above the threshold; subsidies for eligible transport
modes reduce the total, so the regulatory cost can be negative. Status is
"compliant" when no cap is exceeded, "compliant_with_offset" when exceeded
caps carry a per-ton cost, and "non_compliant" when a penalty applies.
Reply with JSON matching:
{"route_id": "...", "regulations_applicable": ["..."],
 "regulatory_cost_usd": 0, "compliance_status": "compliant"}.`

func (s *Service) AssessCompliance(ctx context.Context, candidate domain.RouteCandidate, weightTons float64) (domain.ComplianceRecord, error) {
	if len(candidate.Segments) == 0 {
		return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: route %s has no segments", candidate.ID)
	}

	origin := candidate.Segments[0].From
	destination := candidate.Segments[len(candidate.Segments)-1].To

	var regions []string
	for _, name := range []string{origin, destination} {
		loc, err := s.store.GetLocation(ctx, name)
		if err != nil {
			return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: location %q: %w", name, err)
		}
		regions = append(regions, loc.Region)
	}

	regs, err := s.store.RegulationsForRegions(ctx, regions)
	if err != nil {
		return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: regulations lookup: %w", err)
	}

	factors := make([]domain.EmissionFactor, 0, len(candidate.Segments))
	for _, mode := range candidate.Modes() {
		f, err := s.store.EmissionFactor(ctx, mode)
		if err != nil {
			return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: factor %q: %w", mode, err)
		}
		factors = append(factors, f)
	}

	prompt := fmt.Sprintf(
		"Route:\n%s\nCargo weight: %.1f tons.\nEmission factors:\n%s\nApplicable regulations:\n%s",
		marshalForPrompt(candidate), weightTons, marshalForPrompt(factors), marshalForPrompt(regs),
	)

	var record domain.ComplianceRecord
	if err := s.generateJSON(ctx, complianceSystemPrompt, prompt, &record); err != nil {
		return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: %w", err)
	}

	record.RouteID = candidate.ID
	switch record.Status {
	case domain.StatusCompliant, domain.StatusCompliantWithOffset, domain.StatusNonCompliant:
	default:
		return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: model returned unknown status %q for route %s", record.Status, candidate.ID)
	}
	return record, nil
}
