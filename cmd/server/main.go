package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"github.com/terraship/carbonroute/internal/api"
	"github.com/terraship/carbonroute/internal/pkg/constants"
	"github.com/terraship/carbonroute/internal/pkg/logger"
	"github.com/terraship/carbonroute/internal/pkg/store"
	"github.com/terraship/carbonroute/internal/pkg/store/xpgx"
	"github.com/terraship/carbonroute/internal/service/optimizer"
	"github.com/terraship/carbonroute/internal/service/orchestrator"
	"github.com/terraship/carbonroute/internal/sources"
	"github.com/terraship/carbonroute/internal/sources/catalog"
	"github.com/terraship/carbonroute/internal/sources/gemini"
	"go.uber.org/zap"
)

// main wires the reference store, the analysis sources and the optimization
// engine behind the HTTP API. With no environment at all the service runs on
// the embedded catalog and deterministic sources.
func main() {
	initConfig()

	zl, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger.Init(zl)
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	refStore, err := buildStore(ctx)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	credits, err := refStore.ListCredits(ctx)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	engine := optimizer.NewEngine(credits)

	routeSrc, emissionsSrc, complianceSrc, err := buildSources(ctx, refStore)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	orch := orchestrator.NewService(
		routeSrc, emissionsSrc, complianceSrc, engine,
		viper.GetDuration(constants.ViperSourceTimeout),
		viper.GetDuration(constants.ViperRequestTimeout),
	)

	svc, err := api.NewAPIService(orch, refStore, viper.GetStringSlice(constants.ViperCORSOrigins))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperListenAddr))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}

func initConfig() {
	viper.AutomaticEnv()
	viper.SetDefault(constants.ViperListenAddr, constants.DefaultListenAddr)
	viper.SetDefault(constants.ViperGeminiModel, constants.DefaultGeminiModel)
	viper.SetDefault(constants.ViperSourceTimeout, constants.DefaultSourceTimeout)
	viper.SetDefault(constants.ViperRequestTimeout, constants.DefaultRequestTimeout)
	viper.SetDefault(constants.ViperCORSOrigins, []string{"http://localhost:3000"})
}

// buildStore prefers Postgres when a DSN is configured and falls back to the
// embedded reference catalog otherwise.
func buildStore(ctx context.Context) (store.Store, error) {
	dsn := viper.GetString(constants.ViperPostgresDSN)
	if dsn == "" {
		logger.Info(ctx, "no postgres dsn configured, using embedded reference catalog")
		return store.NewStaticStore()
	}

	pool, err := xpgx.NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return store.NewPGStore(pool), nil
}

// buildSources picks the Gemini-backed analysis stages when an API key is
// configured; the deterministic catalog backend otherwise.
func buildSources(ctx context.Context, refStore store.Store) (sources.RouteSource, sources.EmissionsSource, sources.ComplianceSource, error) {
	apiKey := viper.GetString(constants.ViperGeminiAPIKey)
	if apiKey == "" {
		logger.Info(ctx, "no gemini api key configured, using catalog sources")
		svc := catalog.NewService(refStore)
		return svc, svc, svc, nil
	}

	svc, err := gemini.NewService(ctx, apiKey, viper.GetString(constants.ViperGeminiModel), refStore)
	if err != nil {
		return nil, nil, nil, err
	}
	return svc, svc, svc, nil
}
