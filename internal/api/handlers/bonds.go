package handlers

import (
	"net/http"

	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/bonds"
	"trinity-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// SimulateBonds handles POST /api/v1/bonds/simulate
func SimulateBonds(c *gin.Context) {
	var req models.BondsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	scale := 1.0
	if req.Percent {
		scale = 100
	}
	pairs := make([]model.RatePair, len(req.Rates))
	for i, r := range req.Rates {
		pairs[i] = model.RatePair{Short: r.Short / scale, Long: r.Long / scale}
	}

	out, err := bonds.SimulateReturns(pairs)
	if err != nil {
		simulationError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BondsResponse{Returns: out})
}
