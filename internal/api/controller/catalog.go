package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/terraship/carbonroute/internal/domain/dto"
)

func (c *Controller) ListLocations(ctx echo.Context) error {
	locations, err := c.store.ListLocations(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.LocationsResponse{
		Locations: locations,
		Count:     len(locations),
	})
}

func (c *Controller) ListCredits(ctx echo.Context) error {
	credits, err := c.store.ListCredits(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.CreditsResponse{
		Credits: credits,
		Count:   len(credits),
	})
}
