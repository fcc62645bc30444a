package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/terraship/carbonroute/internal/domain/dto"
	"github.com/terraship/carbonroute/internal/pkg/constants"
)

// OptimizeRoute runs the full recommendation pipeline for one shipment.
// Fatal pipeline failures still produce the response envelope: success=false,
// a descriptive error and whatever stage log accumulated before the failure.
func (c *Controller) OptimizeRoute(ctx echo.Context) error {
	var req dto.OptimizeRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	result, err := c.orchestrator.Optimize(ctx.Request().Context(), req)
	if err != nil {
		resp := dto.OptimizeResponse{
			Success: false,
			Error:   err.Error(),
		}
		if result != nil {
			resp.AgentConversation = result.StageLog
		}
		return ctx.JSON(statusOf(err), resp)
	}

	return ctx.JSON(http.StatusOK, dto.OptimizeResponse{
		Success:           true,
		Recommendation:    result.Recommendation,
		AgentConversation: result.StageLog,
	})
}

func statusOf(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if ce, ok := e.(*constants.CodedError); ok {
			return ce.Code()
		}
	}
	return http.StatusInternalServerError
}
