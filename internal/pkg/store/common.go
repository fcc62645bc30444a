package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/terraship/carbonroute/internal/pkg/constants"
)

const (
	tableLocations       = "locations"
	tableRouteOptions    = "route_options"
	tableEmissionFactors = "emission_factors"
	tableRegulations     = "regulations"
	tableCarbonCredits   = "carbon_credits"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel statement builder with Postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
