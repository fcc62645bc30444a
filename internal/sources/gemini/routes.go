package gemini

import (
	"context"
	"fmt"

	"github.com/terraship/carbonroute/internal/domain"
)

const routeSystemPrompt = `You are a logistics expert finding shipping routes.
Given the catalog of known route options between an origin and a destination,
select every viable option for the shipment, keeping the catalog's identifiers,
segments, costs, transit times and reliability figures exactly as given.
Reply with JSON: {"routes_found": [<route objects from the catalog>]}.`

// FindRoutes asks the model to pick viable candidates from the catalog's
// options for the pair. Candidates whose IDs are not in the catalog are
// dropped so downstream foreign keys stay valid.
func (s *Service) FindRoutes(ctx context.Context, origin, destination string, weightTons float64) ([]domain.RouteCandidate, error) {
	if _, err := s.store.GetLocation(ctx, origin); err != nil {
		return nil, fmt.Errorf("find routes: origin %q: %w", origin, err)
	}
	if _, err := s.store.GetLocation(ctx, destination); err != nil {
		return nil, fmt.Errorf("find routes: destination %q: %w", destination, err)
	}

	options, err := s.store.ListRouteOptions(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("find routes: list options: %w", err)
	}
	if len(options) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(
		"Shipment: %.1f tons from %s to %s.\nCatalog route options:\n%s\nSelect the viable options.",
		weightTons, origin, destination, marshalForPrompt(options),
	)

	var reply struct {
		RoutesFound []domain.RouteCandidate `json:"routes_found"`
	}
	if err := s.generateJSON(ctx, routeSystemPrompt, prompt, &reply); err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}

	known := make(map[string]struct{}, len(options))
	for _, opt := range options {
		known[opt.ID] = struct{}{}
	}

	candidates := make([]domain.RouteCandidate, 0, len(reply.RoutesFound))
	for _, c := range reply.RoutesFound {
		if _, ok := known[c.ID]; ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}
