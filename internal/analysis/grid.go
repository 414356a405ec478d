package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"trinity-backtest/internal/backtest"
	"trinity-backtest/internal/model"
	"trinity-backtest/internal/strategy"
)

// Grid is the cross product of portfolio settings to replay, in the layout of
// the Trinity study's tables.
type Grid struct {
	StockAllocations []float64 `json:"stock_allocations" yaml:"stock_allocations"`
	Years            []int     `json:"years" yaml:"years"`
	WithdrawalRates  []float64 `json:"withdrawal_rates" yaml:"withdrawal_rates"`
}

// DefaultGrid is the allocation/duration/rate table published in the study.
func DefaultGrid() Grid {
	return Grid{
		StockAllocations: []float64{1, 0.75, 0.5, 0.25, 0},
		Years:            []int{15, 20, 25, 30},
		WithdrawalRates:  []float64{0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.10, 0.11, 0.12},
	}
}

// Size is the number of combinations in the grid.
func (g Grid) Size() int {
	return len(g.StockAllocations) * len(g.Years) * len(g.WithdrawalRates)
}

func (g Grid) Validate() error {
	if g.Size() == 0 {
		return errors.New("grid needs at least one allocation, duration and withdrawal rate")
	}
	for _, a := range g.StockAllocations {
		if a < 0 || a > 1 {
			return fmt.Errorf("stock allocation %v must be in [0,1]", a)
		}
	}
	for _, y := range g.Years {
		if y < 1 {
			return fmt.Errorf("duration %d must be >= 1", y)
		}
	}
	for _, w := range g.WithdrawalRates {
		if w < 0 {
			return fmt.Errorf("withdrawal rate %v must be >= 0", w)
		}
	}
	return nil
}

// GridResult is the success rate of one grid cell.
type GridResult struct {
	StockAllocation float64 `json:"stock_allocation"`
	Years           int     `json:"years"`
	WithdrawalRate  float64 `json:"withdrawal_rate"`
	Periods         int     `json:"periods"`
	Successes       int     `json:"successes"`
	SuccessRate     float64 `json:"success_rate"`
}

// ScanGrid computes the success rate of every grid cell over [startYear, endYear].
// Cells are independent and run on up to workers goroutines (GOMAXPROCS when
// workers <= 0). The first error cancels the scan.
func ScanGrid(ctx context.Context, returns model.Returns, startYear, endYear int, grid Grid, workers int) ([]GridResult, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	started := time.Now()
	results := make([]GridResult, grid.Size())
	strat := strategy.Default()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	i := 0
	for _, alloc := range grid.StockAllocations {
		for _, years := range grid.Years {
			for _, rate := range grid.WithdrawalRates {
				slot := i
				alloc, years, rate := alloc, years, rate
				i++
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					rep, err := backtest.Evaluate(returns, startYear, endYear, years, model.PortfolioParams{
						StockAllocation: alloc,
						WithdrawalRate:  rate,
					}, strat)
					if err != nil {
						return fmt.Errorf("allocation %v, %d years, rate %v: %w", alloc, years, rate, err)
					}
					results[slot] = GridResult{
						StockAllocation: alloc,
						Years:           years,
						WithdrawalRate:  rate,
						Periods:         len(rep.Periods),
						Successes:       rep.Successes,
						SuccessRate:     rep.SuccessRate,
					}
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortTable(results)
	log.Debug().
		Int("cells", len(results)).
		Int("workers", workers).
		Dur("elapsed", time.Since(started)).
		Msg("grid scan complete")
	return results, nil
}

// SortTable orders results by allocation descending, then duration and rate ascending.
func SortTable(results []GridResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.StockAllocation != b.StockAllocation {
			return a.StockAllocation > b.StockAllocation
		}
		if a.Years != b.Years {
			return a.Years < b.Years
		}
		return a.WithdrawalRate < b.WithdrawalRate
	})
}

// RankBySuccessRate returns a copy sorted by success rate descending; ties keep table order.
func RankBySuccessRate(results []GridResult) []GridResult {
	out := make([]GridResult, len(results))
	copy(out, results)
	SortTable(out)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SuccessRate > out[j].SuccessRate
	})
	return out
}
