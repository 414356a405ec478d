package model

import (
	"math"
	"sort"
)

// MarketRecord is one year of the historical dataset (Shiller layout).
//
// Rates are decimal fractions (0.05 == 5%), not percentages.
type MarketRecord struct {
	Year      int     `json:"year"`
	Price     float64 `json:"price"`
	Dividends float64 `json:"dividends"`
	CPI       float64 `json:"cpi"`
	ShortRate float64 `json:"short_rate"`
	LongRate  float64 `json:"long_rate"`
}

// Rates returns the record's 1-year/10-year rate pair.
func (r MarketRecord) Rates() RatePair {
	return RatePair{Short: r.ShortRate, Long: r.LongRate}
}

// RatePair holds the 1-year and 10-year interest rates for one year.
type RatePair struct {
	Short float64 `json:"short"`
	Long  float64 `json:"long"`
}

// AnnualReturns are real (inflation-adjusted) returns for a single year.
type AnnualReturns struct {
	Stocks float64 `json:"stocks"`
	Bonds  float64 `json:"bonds"`
}

// Returns maps a year to its real stock and bond returns.
// Treat it as read-only once built; it is shared across simulations.
type Returns map[int]AnnualReturns

// Years returns the years present, ascending.
func (r Returns) Years() []int {
	years := make([]int, 0, len(r))
	for y := range r {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// YearRange returns the first and last year present. ok is false when empty.
func (r Returns) YearRange() (first, last int, ok bool) {
	if len(r) == 0 {
		return 0, 0, false
	}
	first, last = math.MaxInt, math.MinInt
	for y := range r {
		if y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}
	return first, last, true
}

// Between returns a copy restricted to years in [start, end].
func (r Returns) Between(start, end int) Returns {
	out := make(Returns)
	for y, v := range r {
		if y >= start && y <= end {
			out[y] = v
		}
	}
	return out
}
