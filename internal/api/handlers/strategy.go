package handlers

import (
	"net/http"

	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/strategy"

	"github.com/gin-gonic/gin"
)

// ListStrategies handles GET /api/v1/strategies
func ListStrategies(c *gin.Context) {
	def := strategy.Default().Name()
	all := strategy.All()
	out := make([]models.StrategyInfo, len(all))
	for i, s := range all {
		out[i] = models.StrategyInfo{
			Name:        s.Name(),
			Description: s.Description(),
			Default:     s.Name() == def,
		}
	}
	c.JSON(http.StatusOK, gin.H{"strategies": out})
}
