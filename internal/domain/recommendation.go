package domain

// RankedRoute is a candidate merged with its emissions and compliance data,
// plus the derived totals and final score. Total cost and total emissions are
// fully determined by the inputs.
type RankedRoute struct {
	RouteCandidate
	Emissions        EmissionsRecord       `json:"emissions"`
	Compliance       ComplianceRecord      `json:"compliance"`
	CreditSolution   *CarbonCreditSolution `json:"carbon_credit_solution,omitempty"`
	TotalCostUSD     float64               `json:"total_cost_usd"`
	TotalEmissionsKg float64               `json:"total_emissions_kg"`
	Score            float64               `json:"score"`
	Rationale        string                `json:"reasoning"`
}

type CostRange struct {
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	SavingsVsWorst float64 `json:"savings_vs_worst"`
	SpreadPct      float64 `json:"spread_pct"`
}

type TimeRange struct {
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	DelayVsFastest float64 `json:"delay_vs_fastest"`
	SpreadPct      float64 `json:"spread_pct"`
}

type EmissionsRange struct {
	Min                 float64 `json:"min"`
	Max                 float64 `json:"max"`
	ReductionVsWorstPct float64 `json:"reduction_vs_worst_pct"`
	SpreadPct           float64 `json:"spread_pct"`
}

// TradeOffAnalysis is the comparative summary across all surviving routes.
// KeyInsights are generated from the numeric range fields, never re-derived.
type TradeOffAnalysis struct {
	CostRange      CostRange      `json:"cost_range"`
	TimeRange      TimeRange      `json:"time_range"`
	EmissionsRange EmissionsRange `json:"emissions_range"`
	KeyInsights    []string       `json:"key_insights"`
}

// Recommendation is the optimizer's output for one request.
type Recommendation struct {
	RecommendedRoute RankedRoute      `json:"recommended_route"`
	Alternatives     []RankedRoute    `json:"alternatives"`
	TradeOffs        TradeOffAnalysis `json:"trade_off_analysis"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
