package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/terraship/carbonroute/internal/api/controller"
	"github.com/terraship/carbonroute/internal/pkg/logger"
	"github.com/terraship/carbonroute/internal/pkg/store"
	"github.com/terraship/carbonroute/internal/service/orchestrator"
)

type APIService struct {
	router       *echo.Echo
	orchestrator *orchestrator.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router for httptest-driven tests.
func (svc *APIService) Handler() *echo.Echo {
	return svc.router
}

func NewAPIService(orch *orchestrator.Service, refStore store.Store, corsOrigins []string) (*APIService, error) {
	svc := &APIService{
		router:       echo.New(),
		orchestrator: orch,
	}
	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.OFF)

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Recover())
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type"},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(orch, refStore)

	routes := api.Group("/routes")
	routes.POST("/optimize", cntrl.OptimizeRoute)

	api.GET("/health", cntrl.Health)
	api.GET("/locations", cntrl.ListLocations)
	api.GET("/credits", cntrl.ListCredits)

	return svc, nil
}
