package optimizer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/terraship/carbonroute/internal/domain"
)

// resolveCredit runs for every candidate, regardless of priority. A purchase
// is required when emissions exceed the compliance-free allowance and the
// route is not already fully compliant. The credit cost feeds the route's
// total cost before scoring.
func (e *Engine) resolveCredit(b Bundle) *domain.CarbonCreditSolution {
	overageKg := b.Emissions.TotalEmissionsKg - e.allowanceKg
	if overageKg <= 0 {
		return &domain.CarbonCreditSolution{
			Needed:    false,
			Rationale: "Emissions within the compliance-free allowance; no offset required.",
		}
	}
	if b.Compliance.Status == domain.StatusCompliant {
		return &domain.CarbonCreditSolution{
			Needed:    false,
			Rationale: "Route is fully compliant; no offset purchase required.",
		}
	}

	credit, belowPreferred := e.selectCredit(overageKg)
	if credit == nil {
		return &domain.CarbonCreditSolution{
			Needed:    false,
			Rationale: "No carbon credits available in the catalog.",
		}
	}

	cost := creditCost(*credit, overageKg)
	rationale := fmt.Sprintf(
		"Offsets %.0f kg CO2e overage with %s (%s tier, rating %.1f) at $%.2f/ton: $%.2f.",
		overageKg, credit.Name, credit.QualityTier, credit.Rating, credit.PricePerTonUSD, cost,
	)
	if belowPreferred {
		rationale += " Selected credit is below preferred quality threshold."
	}

	return &domain.CarbonCreditSolution{
		Needed:    true,
		OverageKg: overageKg,
		Credit:    credit,
		CostUSD:   cost,
		Rationale: rationale,
	}
}

// selectCredit picks the cheapest credit meeting the quality and rating
// floors; ties go to the higher rating, then the lower ID. When nothing
// passes the filter it falls back to the cheapest credit overall.
func (e *Engine) selectCredit(overageKg float64) (*domain.CarbonCredit, bool) {
	if len(e.credits) == 0 {
		return nil, false
	}

	best := pickCheapest(e.credits, overageKg, func(c domain.CarbonCredit) bool {
		return c.QualityTier.AtLeast(e.minTier) && c.Rating >= e.minRating
	})
	if best != nil {
		return best, false
	}

	fallback := pickCheapest(e.credits, overageKg, func(domain.CarbonCredit) bool { return true })
	return fallback, true
}

func pickCheapest(credits []domain.CarbonCredit, overageKg float64, keep func(domain.CarbonCredit) bool) *domain.CarbonCredit {
	var best *domain.CarbonCredit
	var bestCost float64

	for i := range credits {
		c := credits[i]
		if !keep(c) {
			continue
		}
		cost := creditCost(c, overageKg)
		switch {
		case best == nil,
			cost < bestCost,
			cost == bestCost && c.Rating > best.Rating,
			cost == bestCost && c.Rating == best.Rating && c.ID < best.ID:
			best = &credits[i]
			bestCost = cost
		}
	}
	return best
}

// creditCost is price_per_ton × overage in tons, rounded to cents.
func creditCost(c domain.CarbonCredit, overageKg float64) float64 {
	return decimal.NewFromFloat(c.PricePerTonUSD).
		Mul(decimal.NewFromFloat(overageKg / 1000)).
		Round(2).
		InexactFloat64()
}
