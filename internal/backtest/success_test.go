package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trinity-backtest/internal/model"
	"trinity-backtest/internal/strategy"
)

func TestSimulate_ExactDepletionFails(t *testing.T) {
	returns := constantReturns(1926, 1995, 0, 0)

	// 20 withdrawals of 4% leave 20% of the portfolio.
	ok, err := Simulate(returns, 1926, 1945, 0.75, 0.04)
	require.NoError(t, err)
	assert.True(t, ok)

	// 20 withdrawals of 5% leave exactly nothing, which is not survival.
	ok, err = Simulate(returns, 1926, 1945, 0.75, 0.05)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSimulate_MissingYear(t *testing.T) {
	_, err := Simulate(constantReturns(1926, 1930, 0, 0), 1926, 1940, 0.5, 0.04)
	assert.ErrorIs(t, err, ErrMissingYear)
}

func TestCalcSuccessRate_AllSurvive(t *testing.T) {
	returns := constantReturns(1926, 1995, 0.05, 0.02)

	rate, err := CalcSuccessRate(returns, 0.75, 20, 0.04)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestCalcSuccessRate_NoneSurvive(t *testing.T) {
	returns := constantReturns(1926, 1995, -0.10, -0.05)

	rate, err := CalcSuccessRate(returns, 0.5, 30, 0.07)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)
}

func TestCalcSuccessRate_Mixed(t *testing.T) {
	// Flat years, except a crash in 1990 that only the last periods include.
	returns := constantReturns(1926, 1995, 0, 0)
	returns[1990] = model.AnnualReturns{Stocks: -0.9, Bonds: -0.9}

	rep, err := Evaluate(returns, 1926, 1995, 20, model.PortfolioParams{StockAllocation: 0.5, WithdrawalRate: 0.04}, strategy.Default())
	require.NoError(t, err)

	// Periods starting 1971..1976 contain 1990: 6 of 51 fail.
	assert.Len(t, rep.Periods, 51)
	assert.Equal(t, 45, rep.Successes)
	require.Len(t, rep.Failed, 6)
	assert.Equal(t, Period{Start: 1971, End: 1990}, rep.Failed[0])
	assert.Equal(t, Period{Start: 1976, End: 1995}, rep.Failed[5])
	assert.Equal(t, 0.88, rep.SuccessRate)
}

func TestCalcSuccessRateBetween_Window(t *testing.T) {
	returns := constantReturns(1871, 2020, 0, 0)
	returns[2000] = model.AnnualReturns{Stocks: -0.9, Bonds: -0.9}

	rate, err := CalcSuccessRateBetween(returns, 1926, 1995, 0.75, 20, 0.04)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate, "2000 lies outside the study window")

	rate, err = CalcSuccessRate(returns.Between(1926, 1995), 0.75, 20, 0.04)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestCalcSuccessRate_NoPeriods(t *testing.T) {
	returns := constantReturns(1926, 1995, 0, 0)

	_, err := CalcSuccessRate(returns, 0.75, 71, 0.04)
	assert.ErrorIs(t, err, ErrNoPeriods)

	_, err = CalcSuccessRate(model.Returns{}, 0.75, 20, 0.04)
	assert.ErrorIs(t, err, ErrNoPeriods)
}
