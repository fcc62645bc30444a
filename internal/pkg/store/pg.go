package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"
	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type pgStore struct {
	pool *Pool
}

// NewPGStore returns a Store backed by the Postgres reference tables.
func NewPGStore(pool *Pool) Store {
	return &pgStore{pool: pool}
}

var (
	locationColumns = []string{"name", "country", "region", "has_port", "has_airport", "has_rail"}
	creditColumns   = []string{"id", "name", "credit_type", "price_per_ton_usd", "quality_tier", "certification", "rating"}
	factorColumns   = []string{"mode", "kg_per_ton_km"}
)

func (s *pgStore) GetLocation(ctx context.Context, name string) (*domain.Location, error) {
	query := builder().Select(locationColumns...).
		From(tableLocations).
		Where(sq.Eq{"name": name})

	loc, err := xpgx.Get[domain.Location](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &loc, nil
}

func (s *pgStore) ListLocations(ctx context.Context) ([]domain.Location, error) {
	query := builder().Select(locationColumns...).
		From(tableLocations).
		OrderBy("name")

	locs, err := xpgx.Select[domain.Location](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	return locs, nil
}

// ListRouteOptions scans route rows, decoding the segments jsonb column into
// the candidate's segment list.
func (s *pgStore) ListRouteOptions(ctx context.Context, origin, destination string) ([]domain.RouteCandidate, error) {
	query := builder().
		Select("id", "name", "base_cost_usd", "transit_days", "reliability", "segments").
		From(tableRouteOptions).
		Where(sq.Eq{"origin": origin, "destination": destination}).
		OrderBy("id")

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var candidates []domain.RouteCandidate
	for rows.Next() {
		var (
			c        domain.RouteCandidate
			segments []byte
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.BaseCostUSD, &c.TransitDays, &c.Reliability, &segments); err != nil {
			return nil, fmt.Errorf("scan route option: %w", err)
		}
		if err := sonic.Unmarshal(segments, &c.Segments); err != nil {
			return nil, fmt.Errorf("decode segments for route %s: %w", c.ID, err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *pgStore) EmissionFactor(ctx context.Context, mode domain.TransportMode) (domain.EmissionFactor, error) {
	query := builder().Select(factorColumns...).
		From(tableEmissionFactors).
		Where(sq.Eq{"mode": string(mode)})

	factor, err := xpgx.Get[domain.EmissionFactor](ctx, s.pool, query)
	if err != nil {
		return domain.EmissionFactor{}, wrapErr(err)
	}
	return factor, nil
}

func (s *pgStore) RegulationsForRegions(ctx context.Context, regions []string) ([]domain.Regulation, error) {
	query := builder().
		Select("id", "region", "name", "policy_type", "threshold_tons_co2",
			"cost_per_ton_usd", "penalty_per_ton_usd", "subsidy_pct", "max_subsidy_usd", "modes_eligible").
		From(tableRegulations).
		Where(sq.Eq{"region": regions}).
		OrderBy("id")

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var regs []domain.Regulation
	for rows.Next() {
		var (
			r     domain.Regulation
			modes []byte
		)
		if err := rows.Scan(&r.ID, &r.Region, &r.Name, &r.Type, &r.ThresholdTonsCO2,
			&r.CostPerTonUSD, &r.PenaltyPerTonUSD, &r.SubsidyPct, &r.MaxSubsidyUSD, &modes); err != nil {
			return nil, fmt.Errorf("scan regulation: %w", err)
		}
		if len(modes) > 0 {
			if err := sonic.Unmarshal(modes, &r.ModesEligible); err != nil {
				return nil, fmt.Errorf("decode modes for regulation %s: %w", r.ID, err)
			}
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

func (s *pgStore) ListCredits(ctx context.Context) ([]domain.CarbonCredit, error) {
	query := builder().Select(creditColumns...).
		From(tableCarbonCredits).
		OrderBy("id")

	credits, err := xpgx.Select[domain.CarbonCredit](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	return credits, nil
}
