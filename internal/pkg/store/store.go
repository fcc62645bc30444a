package store

import (
	"context"

	"github.com/terraship/carbonroute/internal/domain"
)

// Store is the read-only reference-data lookup surface: locations, route
// options, emission factors, regulations and the carbon credit catalog.
// Nothing here mutates per request.
type Store interface {
	GetLocation(ctx context.Context, name string) (*domain.Location, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListRouteOptions(ctx context.Context, origin, destination string) ([]domain.RouteCandidate, error)
	EmissionFactor(ctx context.Context, mode domain.TransportMode) (domain.EmissionFactor, error)
	RegulationsForRegions(ctx context.Context, regions []string) ([]domain.Regulation, error)
	ListCredits(ctx context.Context) ([]domain.CarbonCredit, error)
}
