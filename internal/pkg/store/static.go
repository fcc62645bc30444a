package store

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/pkg/constants"
)

//go:embed data/*.json
var referenceData embed.FS

// staticStore serves the embedded reference catalog. It is the default when
// no Postgres DSN is configured and the fixture source for tests.
type staticStore struct {
	locations map[string]domain.Location
	routes    map[string][]domain.RouteCandidate
	factors   map[domain.TransportMode]domain.EmissionFactor
	regs      map[string][]domain.Regulation
	credits   []domain.CarbonCredit
}

type routeTable struct {
	Routes []struct {
		Origin      string                  `json:"origin"`
		Destination string                  `json:"destination"`
		Options     []domain.RouteCandidate `json:"options"`
	} `json:"routes"`
}

func routeKey(origin, destination string) string {
	return strings.ToLower(origin) + "|" + strings.ToLower(destination)
}

func NewStaticStore() (Store, error) {
	s := &staticStore{
		locations: map[string]domain.Location{},
		routes:    map[string][]domain.RouteCandidate{},
		factors:   map[domain.TransportMode]domain.EmissionFactor{},
		regs:      map[string][]domain.Regulation{},
	}

	var locs struct {
		Locations []domain.Location `json:"locations"`
	}
	if err := loadJSON("data/locations.json", &locs); err != nil {
		return nil, err
	}
	for _, l := range locs.Locations {
		s.locations[strings.ToLower(l.Name)] = l
	}

	var routes routeTable
	if err := loadJSON("data/routes.json", &routes); err != nil {
		return nil, err
	}
	for _, r := range routes.Routes {
		s.routes[routeKey(r.Origin, r.Destination)] = r.Options
	}

	var factors struct {
		Factors []domain.EmissionFactor `json:"emission_factors"`
	}
	if err := loadJSON("data/emission_factors.json", &factors); err != nil {
		return nil, err
	}
	for _, f := range factors.Factors {
		s.factors[f.Mode] = f
	}

	var regs struct {
		Regulations []domain.Regulation `json:"regulations"`
	}
	if err := loadJSON("data/regulations.json", &regs); err != nil {
		return nil, err
	}
	for _, r := range regs.Regulations {
		s.regs[r.Region] = append(s.regs[r.Region], r)
	}

	var credits struct {
		Credits []domain.CarbonCredit `json:"available_credits"`
	}
	if err := loadJSON("data/carbon_credits.json", &credits); err != nil {
		return nil, err
	}
	s.credits = credits.Credits

	return s, nil
}

func loadJSON(path string, dst interface{}) error {
	raw, err := referenceData.ReadFile(path)
	if err != nil {
		return fmt.Errorf("static store: read %s: %w", path, err)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("static store: decode %s: %w", path, err)
	}
	return nil
}

func (s *staticStore) GetLocation(_ context.Context, name string) (*domain.Location, error) {
	loc, ok := s.locations[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("location %q: %w", name, constants.ErrDBNotFound)
	}
	return &loc, nil
}

func (s *staticStore) ListLocations(_ context.Context) ([]domain.Location, error) {
	out := make([]domain.Location, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *staticStore) ListRouteOptions(_ context.Context, origin, destination string) ([]domain.RouteCandidate, error) {
	return s.routes[routeKey(origin, destination)], nil
}

func (s *staticStore) EmissionFactor(_ context.Context, mode domain.TransportMode) (domain.EmissionFactor, error) {
	f, ok := s.factors[mode]
	if !ok {
		return domain.EmissionFactor{}, fmt.Errorf("emission factor for mode %q: %w", mode, constants.ErrDBNotFound)
	}
	return f, nil
}

func (s *staticStore) RegulationsForRegions(_ context.Context, regions []string) ([]domain.Regulation, error) {
	var out []domain.Regulation
	seen := map[string]struct{}{}
	for _, region := range regions {
		if _, ok := seen[region]; ok {
			continue
		}
		seen[region] = struct{}{}
		out = append(out, s.regs[region]...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *staticStore) ListCredits(_ context.Context) ([]domain.CarbonCredit, error) {
	out := make([]domain.CarbonCredit, len(s.credits))
	copy(out, s.credits)
	return out, nil
}
