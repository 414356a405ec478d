package strategy

import (
	"fmt"
	"sort"

	"trinity-backtest/internal/model"
)

// Context is what a strategy sees when deciding the withdrawal for a year.
type Context struct {
	Index     int // years since retirement started
	Year      int
	Returns   model.AnnualReturns
	Portfolio *model.Portfolio
}

// Strategy decides how much to withdraw at the end of each simulated year.
type Strategy interface {
	Name() string
	Description() string
	Withdrawal(ctx Context) float64
}

// FixedStrategy is the Trinity study rule: withdraw InitialBalance*WithdrawalRate
// every year. The amount is fixed in nominal terms and never indexed to
// inflation; published reference numbers assume exactly this.
type FixedStrategy struct{}

func (FixedStrategy) Name() string { return "fixed" }

func (FixedStrategy) Description() string {
	return "Withdraw a fixed amount each year-end, equal to the withdrawal rate times the initial balance."
}

func (FixedStrategy) Withdrawal(ctx Context) float64 {
	return ctx.Portfolio.Params.InitialBalance * ctx.Portfolio.Params.WithdrawalRate
}

var registry = map[string]Strategy{
	FixedStrategy{}.Name(): FixedStrategy{},
}

// Default returns the Trinity study withdrawal rule.
func Default() Strategy { return FixedStrategy{} }

// ByName looks up a registered strategy. An empty name selects Default.
func ByName(name string) (Strategy, error) {
	if name == "" {
		return Default(), nil
	}
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
	return s, nil
}

// All returns the registered strategies sorted by name.
func All() []Strategy {
	out := make([]Strategy, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
