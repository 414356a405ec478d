package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trinity-backtest/internal/api"
	"trinity-backtest/internal/api/handlers"
	"trinity-backtest/internal/api/middleware"
	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/config"
	"trinity-backtest/internal/data"
	"trinity-backtest/internal/logging"
	"trinity-backtest/internal/returns"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	cfgPath := pflag.StringP("config", "c", os.Getenv("TRINITY_CONFIG"), "Path to YAML config")
	pflag.Parse()

	if err := run(*cfgPath); err != nil {
		log.Fatal().Err(err).Msg("api server failed")
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr); err != nil {
		return err
	}
	if cfg.Data.CSV == "" {
		return errors.New("no market data: set data.csv in the config or TRINITY_DATA")
	}

	// The dataset is loaded once; every request reads the same immutable returns.
	records, err := data.LoadShillerCSV(cfg.Data.CSV, *cfg.Data.PercentRates)
	if err != nil {
		return err
	}
	rets, err := returns.Compute(records)
	if err != nil {
		return err
	}
	first, last, _ := rets.YearRange()
	log.Info().
		Str("data", cfg.Data.CSV).
		Int("first_year", first).
		Int("last_year", last).
		Msg("market data loaded")

	if cfg.API.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := data.NewResultCache[models.SuccessRateResponse](cfg.API.CacheTTL)
	go cache.Cleanup(ctx, cfg.API.CacheTTL)

	router := api.NewRouter(api.Options{
		Dataset: &handlers.Dataset{
			Returns:   rets,
			StartYear: cfg.Study.StartYear,
			EndYear:   cfg.Study.EndYear,
		},
		Grid:           cfg.Grid.Grid,
		GridWorkers:    cfg.Grid.Workers,
		AllowedOrigins: cfg.API.AllowedOrigins,
		Cache:          cache,
		Metrics:        middleware.NewMetrics(),
		GridLimiter:    middleware.NewLimiter(cfg.API.RateLimit, cfg.API.RateBurst),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.API.Env).Msg("starting API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
