package domain

// QualityTier grades carbon credits.
type QualityTier string

const (
	TierBasic    QualityTier = "basic"
	TierStandard QualityTier = "standard"
	TierPremium  QualityTier = "premium"
)

var tierRank = map[QualityTier]int{
	TierBasic:    0,
	TierStandard: 1,
	TierPremium:  2,
}

// AtLeast reports whether the tier is the same or better than min.
func (t QualityTier) AtLeast(min QualityTier) bool {
	return tierRank[t] >= tierRank[min]
}

// CarbonCredit is one marketplace offering. Rating is in [0,5].
type CarbonCredit struct {
	ID             string      `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	Type           string      `json:"type" db:"credit_type"`
	PricePerTonUSD float64     `json:"price_per_ton_usd" db:"price_per_ton_usd"`
	QualityTier    QualityTier `json:"quality_tier" db:"quality_tier"`
	Certification  string      `json:"certification" db:"certification"`
	Rating         float64     `json:"rating" db:"rating"`
}

// CarbonCreditSolution is derived per route when its emissions exceed the
// compliance-free allowance. Never persisted.
type CarbonCreditSolution struct {
	Needed    bool          `json:"needed"`
	OverageKg float64       `json:"overage_kg,omitempty"`
	Credit    *CarbonCredit `json:"recommended_credit,omitempty"`
	CostUSD   float64       `json:"cost_usd,omitempty"`
	Rationale string        `json:"reasoning,omitempty"`
}
