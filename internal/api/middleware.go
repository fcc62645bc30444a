package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/terraship/carbonroute/internal/pkg/logger"
)

// RequestIDMiddleware tags every request with a UUID carried through the
// context so all pipeline log lines for one request correlate, and logs the
// end-to-end outcome.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		requestID := uuid.NewString()

		reqCtx := logger.WithRequestID(ctx.Request().Context(), requestID)
		ctx.SetRequest(ctx.Request().WithContext(reqCtx))
		ctx.Response().Header().Set(echo.HeaderXRequestID, requestID)

		start := time.Now()
		err := next(ctx)

		logger.Infof(reqCtx, "method=%s path=%s status=%d dur=%dms",
			ctx.Request().Method,
			ctx.Request().URL.Path,
			ctx.Response().Status,
			time.Since(start).Milliseconds(),
		)
		return err
	}
}
