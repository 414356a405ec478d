package api

import (
	"net/http"

	"trinity-backtest/internal/analysis"
	"trinity-backtest/internal/api/handlers"
	"trinity-backtest/internal/api/middleware"
	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/data"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Options wires the router's dependencies. Cache, Metrics and GridLimiter are optional.
type Options struct {
	Dataset        *handlers.Dataset
	Grid           analysis.Grid
	GridWorkers    int
	AllowedOrigins []string
	Cache          *data.ResultCache[models.SuccessRateResponse]
	Metrics        *middleware.Metrics
	GridLimiter    *rate.Limiter
}

// NewRouter builds the gin engine with all API routes.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(opts.Metrics.Middleware())
	router.NoRoute(middleware.NotFound())

	returnsHandler := handlers.NewReturnsHandler(opts.Dataset)
	successHandler := handlers.NewSuccessRateHandler(opts.Dataset, opts.Cache, opts.Metrics)
	gridHandler := handlers.NewGridHandler(opts.Dataset, opts.Grid, opts.GridWorkers, opts.Metrics)

	router.GET("/health", func(c *gin.Context) {
		first, last, _ := opts.Dataset.Returns.YearRange()
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"years":      len(opts.Dataset.Returns),
			"first_year": first,
			"last_year":  last,
		})
	})
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/returns", returnsHandler.GetReturns)
		v1.GET("/periods", returnsHandler.GetPeriods)
		v1.POST("/success-rate", successHandler.CalcSuccessRate)
		v1.POST("/bonds/simulate", handlers.SimulateBonds)
		v1.POST("/grid", middleware.RateLimit(opts.GridLimiter), gridHandler.ScanGrid)
		v1.GET("/strategies", handlers.ListStrategies)
	}

	return router
}
