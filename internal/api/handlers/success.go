package handlers

import (
	"errors"
	"net/http"

	"trinity-backtest/internal/api/middleware"
	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/backtest"
	"trinity-backtest/internal/data"
	"trinity-backtest/internal/model"
	"trinity-backtest/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuccessRateHandler handles success-rate requests
type SuccessRateHandler struct {
	data    *Dataset
	cache   *data.ResultCache[models.SuccessRateResponse]
	metrics *middleware.Metrics
}

// NewSuccessRateHandler creates a new success-rate handler. cache and metrics may be nil.
func NewSuccessRateHandler(ds *Dataset, cache *data.ResultCache[models.SuccessRateResponse], metrics *middleware.Metrics) *SuccessRateHandler {
	return &SuccessRateHandler{data: ds, cache: cache, metrics: metrics}
}

// CalcSuccessRate handles POST /api/v1/success-rate
func (h *SuccessRateHandler) CalcSuccessRate(c *gin.Context) {
	var req models.SuccessRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Years < 1 {
		badRequest(c, errors.New("years must be >= 1"))
		return
	}
	w, err := h.data.window(req.YearWindow)
	if err != nil {
		badRequest(c, err)
		return
	}
	strat, err := strategy.ByName(req.Strategy)
	if err != nil {
		badRequest(c, err)
		return
	}
	params := model.PortfolioParams{
		InitialBalance:  model.DefaultInitialBalance,
		StockAllocation: *req.StockAllocation,
		WithdrawalRate:  *req.WithdrawalRate,
	}
	if err := params.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	key := data.CacheKey(params.StockAllocation, req.Years, params.WithdrawalRate,
		w.StartYear, w.EndYear, strat.Name(), req.IncludeLedger)
	if cached, ok := h.cache.Get(key); ok {
		h.metrics.ObserveCache(true)
		cached.ID = uuid.NewString()
		cached.Cached = true
		c.JSON(http.StatusOK, cached)
		return
	}
	h.metrics.ObserveCache(false)

	rep, err := backtest.Evaluate(h.data.Returns, w.StartYear, w.EndYear, req.Years, params, strat)
	if err != nil {
		simulationError(c, err)
		return
	}
	h.metrics.ObserveSimulations("success_rate", len(rep.Periods))

	resp := models.SuccessRateResponse{
		SuccessRate:     rep.SuccessRate,
		StockAllocation: params.StockAllocation,
		Years:           req.Years,
		WithdrawalRate:  params.WithdrawalRate,
		Strategy:        strat.Name(),
		Window:          w,
		Periods:         len(rep.Periods),
		Successes:       rep.Successes,
		FailedPeriods:   make([]string, 0, len(rep.Failed)),
	}
	for _, p := range rep.Failed {
		resp.FailedPeriods = append(resp.FailedPeriods, p.String())
	}

	if req.IncludeLedger {
		engine := backtest.New()
		for _, p := range rep.Periods {
			res, err := engine.Run(h.data.Returns, p, params, strat)
			if err != nil {
				simulationError(c, err)
				return
			}
			resp.Ledgers = append(resp.Ledgers, convertResult(res))
		}
	}

	h.cache.Set(key, resp)
	resp.ID = uuid.NewString()
	c.JSON(http.StatusOK, resp)
}

func convertResult(res *backtest.Result) models.PeriodLedger {
	rows := make([]models.LedgerRow, len(res.Ledger))
	for i, r := range res.Ledger {
		rows[i] = models.LedgerRow{
			Index:        r.Index,
			Year:         r.Year,
			StockReturn:  r.StockReturn,
			BondReturn:   r.BondReturn,
			BalanceStart: r.BalanceStart,
			StockValue:   r.StockValue,
			BondValue:    r.BondValue,
			Withdrawal:   r.Withdrawal,
			BalanceEnd:   r.BalanceEnd,
			CumWithdrawn: r.CumWithdrawn,
			Outcome:      string(r.Outcome),
		}
	}
	return models.PeriodLedger{
		Period:       res.Period.String(),
		Survived:     res.Survived,
		FinalBalance: res.FinalBalance,
		Rows:         rows,
	}
}
