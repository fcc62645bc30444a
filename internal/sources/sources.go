package sources

import (
	"context"

	"github.com/terraship/carbonroute/internal/domain"
)

// The three analysis capabilities the orchestrator consumes. Each is opaque,
// idempotent and side-effect-free from the pipeline's perspective; callers
// bound every call with a timeout and treat an expired deadline as a failure
// of that call only.

// RouteSource discovers candidate routes between two locations.
type RouteSource interface {
	FindRoutes(ctx context.Context, origin, destination string, weightTons float64) ([]domain.RouteCandidate, error)
}

// EmissionsSource estimates a candidate's carbon footprint.
type EmissionsSource interface {
	EstimateEmissions(ctx context.Context, candidate domain.RouteCandidate, weightTons float64) (domain.EmissionsRecord, error)
}

// ComplianceSource assesses a candidate against regional regulations.
// It is independent of EmissionsSource: implementations derive any footprint
// they need from the candidate itself.
type ComplianceSource interface {
	AssessCompliance(ctx context.Context, candidate domain.RouteCandidate, weightTons float64) (domain.ComplianceRecord, error)
}
