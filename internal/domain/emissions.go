package domain

// EmissionCategory is the coarse label attached to a route's total emissions.
type EmissionCategory string

const (
	EmissionLow    EmissionCategory = "low"
	EmissionMedium EmissionCategory = "medium"
	EmissionHigh   EmissionCategory = "high"
)

// Category cut-offs in kg CO2e per shipment.
const (
	emissionLowCeilingKg    = 500.0
	emissionMediumCeilingKg = 2000.0
)

// CategoryForEmissions buckets a total into low/medium/high.
func CategoryForEmissions(totalKg float64) EmissionCategory {
	switch {
	case totalKg < emissionLowCeilingKg:
		return EmissionLow
	case totalKg < emissionMediumCeilingKg:
		return EmissionMedium
	default:
		return EmissionHigh
	}
}

// SegmentEmissions is the per-leg share of a route's footprint.
type SegmentEmissions struct {
	From        string        `json:"from"`
	To          string        `json:"to"`
	Mode        TransportMode `json:"mode"`
	DistanceKm  float64       `json:"distance_km"`
	EmissionsKg float64       `json:"emissions_kg"`
}

// EmissionsRecord is one candidate's footprint. RouteID references a
// RouteCandidate produced in the same request.
type EmissionsRecord struct {
	RouteID          string             `json:"route_id"`
	TotalEmissionsKg float64            `json:"total_emissions_kg"`
	Category         EmissionCategory   `json:"category"`
	Breakdown        []SegmentEmissions `json:"breakdown_by_segment"`
}
