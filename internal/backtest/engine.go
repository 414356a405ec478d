package backtest

import (
	"errors"
	"fmt"

	"trinity-backtest/internal/model"
	"trinity-backtest/internal/strategy"
)

// ErrMissingYear is returned when a period needs a year the returns do not cover.
var ErrMissingYear = errors.New("missing returns for year")

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run replays one period year by year. The balance is allowed to go negative;
// the portfolio survived if it is still above zero after the final year.
func (e *Engine) Run(returns model.Returns, period Period, params model.PortfolioParams, strat strategy.Strategy) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if period.End < period.Start {
		return nil, fmt.Errorf("period %s is empty", period)
	}
	pf, err := model.NewPortfolio(params)
	if err != nil {
		return nil, err
	}

	ledger := make([]LedgerRow, 0, period.Years())
	cum := 0.0

	for idx, year := 0, period.Start; year <= period.End; idx, year = idx+1, year+1 {
		r, ok := returns[year]
		if !ok {
			return nil, fmt.Errorf("period %s: %w %d", period, ErrMissingYear, year)
		}

		withdrawal := strat.Withdrawal(strategy.Context{
			Index:     idx,
			Year:      year,
			Returns:   r,
			Portfolio: pf,
		})
		res := pf.ApplyYear(r, withdrawal)
		cum += withdrawal

		ledger = append(ledger, LedgerRow{
			Index: idx,
			Year:  year,

			StockReturn: r.Stocks,
			BondReturn:  r.Bonds,

			BalanceStart: res.BalanceStart,
			StockValue:   res.StockValue,
			BondValue:    res.BondValue,
			Withdrawal:   res.Withdrawal,
			BalanceEnd:   res.BalanceEnd,

			CumWithdrawn: cum,

			Outcome: model.OutcomeFromBalances(res.BalanceStart, res.BalanceEnd),
		})
	}

	return &Result{
		Period:       period,
		Ledger:       ledger,
		FinalBalance: pf.State.Balance,
		Survived:     pf.State.Balance > 0,
	}, nil
}
