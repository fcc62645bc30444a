package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/terraship/carbonroute/internal/domain"
)

var statusSeverity = map[domain.ComplianceStatus]int{
	domain.StatusCompliant:           0,
	domain.StatusCompliantWithOffset: 1,
	domain.StatusNonCompliant:        2,
}

func escalate(current, next domain.ComplianceStatus) domain.ComplianceStatus {
	if statusSeverity[next] > statusSeverity[current] {
		return next
	}
	return current
}

// AssessCompliance evaluates every regulation of the origin and destination
// regions against the candidate. Emission caps add per-ton charges or
// penalties above their threshold; mode-eligible subsidies reduce the total,
// so the regulatory cost can be negative. The footprint is derived locally so
// the source stays independent of the emissions stage.
func (s *Service) AssessCompliance(ctx context.Context, candidate domain.RouteCandidate, weightTons float64) (domain.ComplianceRecord, error) {
	if len(candidate.Segments) == 0 {
		return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: route %s has no segments", candidate.ID)
	}

	emissions, err := s.EstimateEmissions(ctx, candidate, weightTons)
	if err != nil {
		return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: %w", err)
	}

	regions, err := s.routeRegions(ctx, candidate)
	if err != nil {
		return domain.ComplianceRecord{}, err
	}

	regs, err := s.store.RegulationsForRegions(ctx, regions)
	if err != nil {
		return domain.ComplianceRecord{}, fmt.Errorf("assess compliance: regulations lookup: %w", err)
	}

	record := domain.ComplianceRecord{
		RouteID:       candidate.ID,
		RegulationIDs: make([]string, 0, len(regs)),
		Status:        domain.StatusCompliant,
	}

	total := decimal.Zero
	modes := candidate.Modes()

	for _, reg := range regs {
		switch reg.Type {
		case domain.RegulationTypeEmissionCap:
			record.RegulationIDs = append(record.RegulationIDs, reg.ID)

			thresholdKg := reg.ThresholdTonsCO2 * 1000
			if emissions.TotalEmissionsKg <= thresholdKg {
				continue
			}
			overTons := decimal.NewFromFloat((emissions.TotalEmissionsKg - thresholdKg) / 1000)

			if reg.CostPerTonUSD > 0 {
				total = total.Add(overTons.Mul(decimal.NewFromFloat(reg.CostPerTonUSD)))
				record.Status = escalate(record.Status, domain.StatusCompliantWithOffset)
			} else if reg.PenaltyPerTonUSD > 0 {
				total = total.Add(overTons.Mul(decimal.NewFromFloat(reg.PenaltyPerTonUSD)))
				record.Status = escalate(record.Status, domain.StatusNonCompliant)
			}

		case domain.RegulationTypeSubsidy:
			if !modesEligible(modes, reg.ModesEligible) {
				continue
			}
			record.RegulationIDs = append(record.RegulationIDs, reg.ID)

			subsidy := decimal.NewFromFloat(candidate.BaseCostUSD).
				Mul(decimal.NewFromFloat(reg.SubsidyPct)).
				Div(decimal.NewFromInt(100))
			cap := decimal.NewFromFloat(reg.MaxSubsidyUSD)
			if reg.MaxSubsidyUSD > 0 && subsidy.GreaterThan(cap) {
				subsidy = cap
			}
			total = total.Sub(subsidy)
		}
	}

	record.RegulatoryCostUSD = total.Round(2).InexactFloat64()
	return record, nil
}

// routeRegions returns the distinct regulatory regions of the route's
// endpoints, in origin-then-destination order.
func (s *Service) routeRegions(ctx context.Context, candidate domain.RouteCandidate) ([]string, error) {
	origin := candidate.Segments[0].From
	destination := candidate.Segments[len(candidate.Segments)-1].To

	var regions []string
	for _, name := range []string{origin, destination} {
		loc, err := s.store.GetLocation(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("assess compliance: location %q: %w", name, err)
		}
		if len(regions) == 0 || regions[0] != loc.Region {
			regions = append(regions, loc.Region)
		}
	}
	return regions, nil
}

func modesEligible(routeModes, eligible []domain.TransportMode) bool {
	for _, m := range routeModes {
		for _, e := range eligible {
			if m == e {
				return true
			}
		}
	}
	return false
}
