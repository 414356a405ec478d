package handlers

import (
	"net/http"

	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/backtest"

	"github.com/gin-gonic/gin"
)

// ReturnsHandler serves the historical return series and period listings
type ReturnsHandler struct {
	data *Dataset
}

func NewReturnsHandler(data *Dataset) *ReturnsHandler {
	return &ReturnsHandler{data: data}
}

// GetReturns handles GET /api/v1/returns
func (h *ReturnsHandler) GetReturns(c *gin.Context) {
	var q models.YearWindow
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.data.window(q)
	if err != nil {
		badRequest(c, err)
		return
	}

	sub := h.data.Returns.Between(w.StartYear, w.EndYear)
	out := make([]models.YearReturns, 0, len(sub))
	for _, y := range sub.Years() {
		r := sub[y]
		out = append(out, models.YearReturns{Year: y, Stocks: r.Stocks, Bonds: r.Bonds})
	}
	c.JSON(http.StatusOK, models.ReturnsResponse{Window: w, Returns: out})
}

// GetPeriods handles GET /api/v1/periods
func (h *ReturnsHandler) GetPeriods(c *gin.Context) {
	var q models.PeriodsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.data.window(q.YearWindow)
	if err != nil {
		badRequest(c, err)
		return
	}

	periods := backtest.GetPeriods(w.StartYear, w.EndYear, q.Duration)
	out := make([]models.Period, len(periods))
	for i, p := range periods {
		out[i] = models.Period{Start: p.Start, End: p.End}
	}
	c.JSON(http.StatusOK, models.PeriodsResponse{Count: len(out), Periods: out})
}
