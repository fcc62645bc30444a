package domain

// ComplianceStatus is the regulatory verdict for one route.
type ComplianceStatus string

const (
	StatusCompliant           ComplianceStatus = "compliant"
	StatusCompliantWithOffset ComplianceStatus = "compliant_with_offset"
	StatusNonCompliant        ComplianceStatus = "non_compliant"
)

// ComplianceRecord is one candidate's regulatory assessment.
// RegulatoryCostUSD can be negative when subsidies outweigh charges.
type ComplianceRecord struct {
	RouteID           string           `json:"route_id"`
	RegulationIDs     []string         `json:"regulations_applicable"`
	RegulatoryCostUSD float64          `json:"regulatory_cost_usd"`
	Status            ComplianceStatus `json:"compliance_status"`
	Degraded          bool             `json:"degraded,omitempty"`
}

// DefaultComplianceRecord is the stand-in used when the compliance source
// fails for a candidate: policy failure must not block optimization.
func DefaultComplianceRecord(routeID string) ComplianceRecord {
	return ComplianceRecord{
		RouteID:       routeID,
		RegulationIDs: []string{},
		Status:        StatusCompliant,
		Degraded:      true,
	}
}
