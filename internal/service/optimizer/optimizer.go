// Package optimizer ranks merged route bundles with a deterministic
// multi-factor weighted score and produces the trade-off analysis.
package optimizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/pkg/constants"
)

// Bundle is one candidate with both per-route analysis records merged in.
// The orchestrator guarantees the records reference the candidate.
type Bundle struct {
	Candidate  domain.RouteCandidate
	Emissions  domain.EmissionsRecord
	Compliance domain.ComplianceRecord
}

// Engine scores and ranks bundles. The credit catalog is read-only and safe
// to share across concurrent requests; the engine holds no per-request state.
type Engine struct {
	credits     []domain.CarbonCredit
	allowanceKg float64
	minTier     domain.QualityTier
	minRating   float64
}

func NewEngine(credits []domain.CarbonCredit) *Engine {
	return &Engine{
		credits:     credits,
		allowanceKg: constants.ComplianceFreeAllowanceKg,
		minTier:     domain.TierStandard,
		minRating:   constants.MinCreditRating,
	}
}

// Optimize computes per-route totals, scores against the priority's weight
// triple and returns the ranked recommendation. The result depends only on
// the bundle contents, never on their order of arrival: ties are broken by
// reliability, segment count and route ID.
func (e *Engine) Optimize(bundles []Bundle, priority domain.Priority) (*domain.Recommendation, error) {
	weights, ok := priority.Weights()
	if !ok {
		return nil, fmt.Errorf("optimize: unsupported priority %q", priority)
	}
	if len(bundles) == 0 {
		return nil, fmt.Errorf("optimize: no bundles to rank")
	}

	ranked := make([]domain.RankedRoute, 0, len(bundles))
	for _, b := range bundles {
		ranked = append(ranked, e.merge(b))
	}

	costN := newNormalizer(ranked, func(r domain.RankedRoute) float64 { return r.TotalCostUSD })
	timeN := newNormalizer(ranked, func(r domain.RankedRoute) float64 { return r.TransitDays })
	emisN := newNormalizer(ranked, func(r domain.RankedRoute) float64 { return r.TotalEmissionsKg })

	for i := range ranked {
		r := &ranked[i]
		costScore := costN.score(r.TotalCostUSD)
		timeScore := timeN.score(r.TransitDays)
		emisScore := emisN.score(r.TotalEmissionsKg)

		r.Score = weights.Cost*costScore + weights.Time*timeScore + weights.Emissions*emisScore
		r.Rationale = rationale(*r, priority, costScore, timeScore, emisScore)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Reliability != b.Reliability {
			return a.Reliability > b.Reliability
		}
		if len(a.Segments) != len(b.Segments) {
			return len(a.Segments) < len(b.Segments)
		}
		return a.ID < b.ID
	})

	return &domain.Recommendation{
		RecommendedRoute: ranked[0],
		Alternatives:     ranked[1:],
		TradeOffs:        e.tradeOffs(ranked),
	}, nil
}

// merge derives the totals: base cost plus regulatory cost (possibly
// negative) plus credit cost when an offset purchase is required.
func (e *Engine) merge(b Bundle) domain.RankedRoute {
	solution := e.resolveCredit(b)

	total := decimal.NewFromFloat(b.Candidate.BaseCostUSD).
		Add(decimal.NewFromFloat(b.Compliance.RegulatoryCostUSD))
	if solution.Needed {
		total = total.Add(decimal.NewFromFloat(solution.CostUSD))
	}

	return domain.RankedRoute{
		RouteCandidate:   b.Candidate,
		Emissions:        b.Emissions,
		Compliance:       b.Compliance,
		CreditSolution:   solution,
		TotalCostUSD:     total.Round(2).InexactFloat64(),
		TotalEmissionsKg: b.Emissions.TotalEmissionsKg,
	}
}

type normalizer struct {
	min, max float64
}

func newNormalizer(routes []domain.RankedRoute, metric func(domain.RankedRoute) float64) normalizer {
	n := normalizer{min: metric(routes[0]), max: metric(routes[0])}
	for _, r := range routes[1:] {
		v := metric(r)
		if v < n.min {
			n.min = v
		}
		if v > n.max {
			n.max = v
		}
	}
	return n
}

// score maps a metric value to [0,1] with 1 = best (lowest). When every
// candidate ties the metric carries no information and scores 1.0 for all.
func (n normalizer) score(value float64) float64 {
	if n.max == n.min {
		return 1.0
	}
	return 1 - (value-n.min)/(n.max-n.min)
}

func rationale(r domain.RankedRoute, priority domain.Priority, costScore, timeScore, emisScore float64) string {
	var strengths []string
	if costScore == 1 {
		strengths = append(strengths, "lowest total cost")
	}
	if timeScore == 1 {
		strengths = append(strengths, "fastest transit")
	}
	if emisScore == 1 {
		strengths = append(strengths, "lowest emissions")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Scores %.2f under %s priority", r.Score, priority)
	if len(strengths) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(strengths, ", "))
	}
	fmt.Fprintf(&sb, ": $%.2f total, %.0f days, %.0f kg CO2e.", r.TotalCostUSD, r.TransitDays, r.TotalEmissionsKg)

	if r.CreditSolution != nil && r.CreditSolution.Needed {
		sb.WriteString(" " + r.CreditSolution.Rationale)
	}
	if r.Compliance.Degraded {
		sb.WriteString(" Compliance data was unavailable; defaults applied.")
	}
	return sb.String()
}
