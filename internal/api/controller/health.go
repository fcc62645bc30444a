package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "carbon-routing-api",
		"stages":  []string{"route", "emissions", "compliance", "optimizer"},
	})
}
