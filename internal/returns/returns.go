// Package returns turns raw yearly market records into real annual stock and
// bond returns.
package returns

import (
	"fmt"
	"sort"

	"trinity-backtest/internal/bonds"
	"trinity-backtest/internal/model"
)

// Compute derives real stock and bond returns for every year of records but
// the last, since a year's return needs the following year's price and CPI.
//
// Bond returns come from a simulated ten-year ladder fed with every record's
// 1-year and 10-year rates.
func Compute(records []model.MarketRecord) (model.Returns, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("compute returns: need at least 2 records, got %d: %w",
			len(records), model.ErrInsufficientData)
	}

	sorted := make([]model.MarketRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Year == sorted[i-1].Year {
			return nil, fmt.Errorf("compute returns: duplicate year %d", sorted[i].Year)
		}
	}

	bondReturns, err := BondReturns(sorted)
	if err != nil {
		return nil, fmt.Errorf("compute returns: %w", err)
	}

	out := make(model.Returns, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]
		out[current.Year] = Annual(current, next, bondReturns[current.Year])
	}
	return out, nil
}

// BondReturns simulates nominal bond returns keyed by year. The return for a
// year covers the change in fund value until the following year, so the last
// record has no entry.
func BondReturns(records []model.MarketRecord) (map[int]float64, error) {
	rates := make([]model.RatePair, len(records))
	for i, r := range records {
		rates[i] = r.Rates()
	}
	simulated, err := bonds.SimulateReturns(rates)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(simulated))
	for i, r := range simulated {
		out[records[i].Year] = r
	}
	return out, nil
}

// Annual calculates real returns from two successive years of market data and
// the simulated nominal bond return for the current year.
func Annual(current, next model.MarketRecord, bondReturn float64) model.AnnualReturns {
	inflation := next.CPI/current.CPI - 1
	stockReturn := (next.Price + current.Dividends - current.Price) / current.Price
	return model.AnnualReturns{
		Stocks: Real(stockReturn, inflation),
		Bonds:  Real(bondReturn, inflation),
	}
}

// Real converts a nominal return into an inflation-adjusted one.
func Real(nominal, inflation float64) float64 {
	return (1+nominal)/(1+inflation) - 1
}
