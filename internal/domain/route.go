package domain

// TransportMode is one leg's carrier type.
type TransportMode string

const (
	ModeSea   TransportMode = "sea"
	ModeAir   TransportMode = "air"
	ModeRail  TransportMode = "rail"
	ModeTruck TransportMode = "truck"
)

func (m TransportMode) Valid() bool {
	switch m {
	case ModeSea, ModeAir, ModeRail, ModeTruck:
		return true
	}
	return false
}

// Segment is one leg of a candidate route.
type Segment struct {
	From       string        `json:"from" db:"from_location"`
	To         string        `json:"to" db:"to_location"`
	Mode       TransportMode `json:"mode" db:"mode"`
	DistanceKm float64       `json:"distance_km" db:"distance_km"`
}

// RouteCandidate is one possible route between origin and destination.
// Immutable once produced by a RouteSource.
type RouteCandidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Segments    []Segment `json:"segments"`
	BaseCostUSD float64   `json:"base_cost_usd"`
	TransitDays float64   `json:"transit_days"`
	Reliability float64   `json:"reliability"`
}

// Modes returns the distinct transport modes in segment order.
func (r RouteCandidate) Modes() []TransportMode {
	seen := make(map[TransportMode]struct{}, len(r.Segments))
	modes := make([]TransportMode, 0, len(r.Segments))
	for _, s := range r.Segments {
		if _, ok := seen[s.Mode]; ok {
			continue
		}
		seen[s.Mode] = struct{}{}
		modes = append(modes, s.Mode)
	}
	return modes
}
