package domain

// Location is one supported city with its regulatory region and
// infrastructure flags. Read-only reference data.
type Location struct {
	Name       string `json:"name" db:"name"`
	Country    string `json:"country" db:"country"`
	Region     string `json:"region" db:"region"`
	HasPort    bool   `json:"has_port" db:"has_port"`
	HasAirport bool   `json:"has_airport" db:"has_airport"`
	HasRail    bool   `json:"has_rail" db:"has_rail"`
}

// EmissionFactor is kg CO2e emitted per ton of cargo per km for one mode.
type EmissionFactor struct {
	Mode       TransportMode `json:"mode" db:"mode"`
	KgPerTonKm float64       `json:"kg_per_ton_km" db:"kg_per_ton_km"`
}

// Regulation is one policy row from the regulations table.
// Exactly one of CostPerTonUSD / PenaltyPerTonUSD applies for threshold
// policies; subsidy policies use SubsidyPct and MaxSubsidyUSD instead.
type Regulation struct {
	ID               string          `json:"id" db:"id"`
	Region           string          `json:"region" db:"region"`
	Name             string          `json:"name" db:"name"`
	Type             string          `json:"type" db:"policy_type"`
	ThresholdTonsCO2 float64         `json:"threshold_tons_co2" db:"threshold_tons_co2"`
	CostPerTonUSD    float64         `json:"cost_per_ton_usd" db:"cost_per_ton_usd"`
	PenaltyPerTonUSD float64         `json:"penalty_per_ton_usd" db:"penalty_per_ton_usd"`
	SubsidyPct       float64         `json:"subsidy_pct" db:"subsidy_pct"`
	MaxSubsidyUSD    float64         `json:"max_subsidy_usd" db:"max_subsidy_usd"`
	ModesEligible    []TransportMode `json:"modes_eligible" db:"modes_eligible"`
}

const (
	RegulationTypeEmissionCap = "emission_cap"
	RegulationTypeSubsidy     = "subsidy"
)
