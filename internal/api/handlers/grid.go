package handlers

import (
	"fmt"
	"net/http"

	"trinity-backtest/internal/analysis"
	"trinity-backtest/internal/api/middleware"
	"trinity-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GridHandler runs Trinity-table grid scans
type GridHandler struct {
	data     *Dataset
	defaults analysis.Grid
	workers  int
	metrics  *middleware.Metrics
}

func NewGridHandler(ds *Dataset, defaults analysis.Grid, workers int, metrics *middleware.Metrics) *GridHandler {
	return &GridHandler{data: ds, defaults: defaults, workers: workers, metrics: metrics}
}

// ScanGrid handles POST /api/v1/grid
func (h *GridHandler) ScanGrid(c *gin.Context) {
	var req models.GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.data.window(req.YearWindow)
	if err != nil {
		badRequest(c, err)
		return
	}

	grid := h.defaults
	if len(req.StockAllocations) > 0 {
		grid.StockAllocations = req.StockAllocations
	}
	if len(req.Years) > 0 {
		grid.Years = req.Years
	}
	if len(req.WithdrawalRates) > 0 {
		grid.WithdrawalRates = req.WithdrawalRates
	}
	if err := grid.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	switch req.RankBy {
	case "", "table", "success_rate":
	default:
		badRequest(c, fmt.Errorf("rank_by %q must be table or success_rate", req.RankBy))
		return
	}

	results, err := analysis.ScanGrid(c.Request.Context(), h.data.Returns, w.StartYear, w.EndYear, grid, h.workers)
	if err != nil {
		simulationError(c, err)
		return
	}
	if req.RankBy == "success_rate" {
		results = analysis.RankBySuccessRate(results)
	}

	resp := models.GridResponse{
		ID:      uuid.NewString(),
		Window:  w,
		Count:   len(results),
		Results: make([]models.GridCell, len(results)),
	}
	for i, r := range results {
		resp.Results[i] = models.GridCell(r)
		h.metrics.ObserveSimulations("grid", r.Periods)
	}
	c.JSON(http.StatusOK, resp)
}
