package backtest

import (
	"errors"
	"fmt"

	"trinity-backtest/internal/model"
	"trinity-backtest/internal/numeric"
	"trinity-backtest/internal/strategy"
)

// ErrNoPeriods is returned when a success rate is requested over zero periods.
var ErrNoPeriods = errors.New("no periods to simulate")

// RatePlaces is the precision success rates are reported with.
const RatePlaces = 2

// Simulate replays a portfolio with the Trinity withdrawal rule between
// startYear and endYear inclusive and reports whether it survived.
func Simulate(returns model.Returns, startYear, endYear int, stockAllocation, withdrawalRate float64) (bool, error) {
	res, err := New().Run(returns, Period{Start: startYear, End: endYear}, model.PortfolioParams{
		StockAllocation: stockAllocation,
		WithdrawalRate:  withdrawalRate,
	}, strategy.Default())
	if err != nil {
		return false, err
	}
	return res.Survived, nil
}

// Report summarises a replay of every period in a window.
type Report struct {
	Periods     []Period
	Failed      []Period
	Successes   int
	SuccessRate float64 // rounded to RatePlaces
}

// Evaluate replays every period of duration years inside [startYear, endYear].
func Evaluate(returns model.Returns, startYear, endYear, duration int, params model.PortfolioParams, strat strategy.Strategy) (*Report, error) {
	periods := GetPeriods(startYear, endYear, duration)
	if len(periods) == 0 {
		return nil, fmt.Errorf("%d-year periods between %d and %d: %w", duration, startYear, endYear, ErrNoPeriods)
	}

	engine := New()
	rep := &Report{Periods: periods}
	for _, p := range periods {
		res, err := engine.Run(returns, p, params, strat)
		if err != nil {
			return nil, err
		}
		if res.Survived {
			rep.Successes++
		} else {
			rep.Failed = append(rep.Failed, p)
		}
	}
	rep.SuccessRate = numeric.Round(float64(rep.Successes)/float64(len(periods)), RatePlaces)
	return rep, nil
}

// CalcSuccessRateBetween returns the fraction of duration-year periods inside
// [startYear, endYear] for which the portfolio survived, rounded to two places.
func CalcSuccessRateBetween(returns model.Returns, startYear, endYear int, stockAllocation float64, duration int, withdrawalRate float64) (float64, error) {
	rep, err := Evaluate(returns, startYear, endYear, duration, model.PortfolioParams{
		StockAllocation: stockAllocation,
		WithdrawalRate:  withdrawalRate,
	}, strategy.Default())
	if err != nil {
		return 0, err
	}
	return rep.SuccessRate, nil
}

// CalcSuccessRate is CalcSuccessRateBetween over every year covered by returns.
// Restrict the window first with returns.Between to reproduce a specific study.
func CalcSuccessRate(returns model.Returns, stockAllocation float64, duration int, withdrawalRate float64) (float64, error) {
	first, last, ok := returns.YearRange()
	if !ok {
		return 0, fmt.Errorf("empty returns: %w", ErrNoPeriods)
	}
	return CalcSuccessRateBetween(returns, first, last, stockAllocation, duration, withdrawalRate)
}
