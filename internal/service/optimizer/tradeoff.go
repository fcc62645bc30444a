package optimizer

import (
	"fmt"

	"github.com/terraship/carbonroute/internal/domain"
)

// Emissions reductions below this share of the worst route are not worth an
// insight line.
const insightEpsilonPct = 0.5

// tradeOffs summarizes cost/time/emissions spread across the ranked set,
// relative to the recommended (first) route. Insight strings are generated
// from the computed range fields only, so prose and numbers cannot diverge.
func (e *Engine) tradeOffs(ranked []domain.RankedRoute) domain.TradeOffAnalysis {
	recommended := ranked[0]

	costN := newNormalizer(ranked, func(r domain.RankedRoute) float64 { return r.TotalCostUSD })
	timeN := newNormalizer(ranked, func(r domain.RankedRoute) float64 { return r.TransitDays })
	emisN := newNormalizer(ranked, func(r domain.RankedRoute) float64 { return r.TotalEmissionsKg })

	analysis := domain.TradeOffAnalysis{
		CostRange: domain.CostRange{
			Min:            costN.min,
			Max:            costN.max,
			SavingsVsWorst: costN.max - recommended.TotalCostUSD,
			SpreadPct:      spreadPct(costN),
		},
		TimeRange: domain.TimeRange{
			Min:            timeN.min,
			Max:            timeN.max,
			DelayVsFastest: recommended.TransitDays - timeN.min,
			SpreadPct:      spreadPct(timeN),
		},
		EmissionsRange: domain.EmissionsRange{
			Min:                 emisN.min,
			Max:                 emisN.max,
			ReductionVsWorstPct: reductionPct(emisN.max, recommended.TotalEmissionsKg),
			SpreadPct:           spreadPct(emisN),
		},
	}
	analysis.KeyInsights = e.insights(recommended, analysis)
	return analysis
}

func spreadPct(n normalizer) float64 {
	if n.max == 0 {
		return 0
	}
	return (n.max - n.min) / n.max * 100
}

func reductionPct(worst, value float64) float64 {
	if worst == 0 {
		return 0
	}
	return (worst - value) / worst * 100
}

func (e *Engine) insights(recommended domain.RankedRoute, a domain.TradeOffAnalysis) []string {
	insights := make([]string, 0, 4)

	if a.CostRange.SavingsVsWorst > 0 {
		insights = append(insights, fmt.Sprintf(
			"Recommended route saves $%.2f versus the most expensive option.",
			a.CostRange.SavingsVsWorst,
		))
	}

	if a.EmissionsRange.ReductionVsWorstPct >= insightEpsilonPct {
		insights = append(insights, fmt.Sprintf(
			"%.1f%% lower emissions than the highest-emission option.",
			a.EmissionsRange.ReductionVsWorstPct,
		))
	}

	if a.TimeRange.DelayVsFastest > 0 {
		insights = append(insights, fmt.Sprintf(
			"%.0f days slower than the fastest option.",
			a.TimeRange.DelayVsFastest,
		))
	}

	if recommended.Compliance.RegulatoryCostUSD < 0 {
		insights = append(insights, fmt.Sprintf(
			"Includes $%.2f in net subsidies.",
			-recommended.Compliance.RegulatoryCostUSD,
		))
	}
	if recommended.CreditSolution != nil && recommended.CreditSolution.Needed {
		insights = append(insights, fmt.Sprintf(
			"Includes $%.2f in carbon credits offsetting %.0f kg CO2e overage.",
			recommended.CreditSolution.CostUSD, recommended.CreditSolution.OverageKg,
		))
	}

	return insights
}
