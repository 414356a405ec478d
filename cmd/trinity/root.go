package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"trinity-backtest/internal/config"
	"trinity-backtest/internal/data"
	"trinity-backtest/internal/logging"
	"trinity-backtest/internal/model"
	"trinity-backtest/internal/returns"
)

// app carries global flags and the state loaded before any command runs.
type app struct {
	configPath string
	dataPath   string
	logLevel   string
	startYear  int
	endYear    int

	cfg *config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}
	var pf portfolioFlags

	root := &cobra.Command{
		Use:   "trinity",
		Short: "Historical success rates of retirement withdrawal rates",
		Long: `trinity replays a retirement portfolio through every historical period of a
given length, Trinity-study style, and prints the fraction of periods in which
the portfolio was not depleted.

Stocks earn the S&P total return, bonds the return of a rolling ladder of ten
government bonds simulated from 1- and 10-year rates. Returns are real.`,
		Example:       "  trinity --stock-allocation 0.75 --years 30 --withdrawal-rate 0.04 --data shiller.csv",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, stderr)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pf.resolve(cmd.Flags(), a.cfg.Portfolio, a.configPath == "")
			if err != nil {
				return err
			}
			rets, err := a.loadReturns()
			if err != nil {
				return err
			}
			rate, err := successRate(rets, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, formatFloat(rate))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	gf := root.PersistentFlags()
	gf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	gf.StringVar(&a.dataPath, "data", "", "Shiller-format CSV (YEAR,P,D,R,RLONG,CPI); overrides data.csv")
	gf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	gf.IntVar(&a.startYear, "start-year", 0, "first year of the study window (default 1926)")
	gf.IntVar(&a.endYear, "end-year", 0, "last year of the study window (default 1995)")

	pf.register(root.Flags())

	root.AddCommand(
		newReturnsCmd(a, stdout),
		newBondsCmd(a, stdout),
		newPeriodsCmd(a, stdout),
		newLedgerCmd(a, stdout),
		newGridCmd(a, stdout),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\nRun '%s --help' for usage", err, cmd.CommandPath())
	})
	return root
}

func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	cfg, err := config.LoadUnchecked(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.Data.CSV = a.dataPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.startYear != 0 {
		cfg.Study.StartYear = a.startYear
	}
	if a.endYear != 0 {
		cfg.Study.EndYear = a.endYear
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr); err != nil {
		return err
	}
	a.cfg = cfg
	log.Debug().Str("command", cmd.CommandPath()).Str("data", cfg.Data.CSV).Msg("configured")
	return nil
}

func (a *app) loadRecords() ([]model.MarketRecord, error) {
	if a.cfg.Data.CSV == "" {
		return nil, errors.New("no market data: pass --data, set data.csv in the config or TRINITY_DATA")
	}
	return data.LoadShillerCSV(a.cfg.Data.CSV, *a.cfg.Data.PercentRates)
}

// loadReturns returns the real returns restricted to the study window.
func (a *app) loadReturns() (model.Returns, error) {
	records, err := a.loadRecords()
	if err != nil {
		return nil, err
	}
	all, err := returns.Compute(records)
	if err != nil {
		return nil, err
	}
	return all.Between(a.cfg.Study.StartYear, a.cfg.Study.EndYear), nil
}

// portfolioFlags are the allocation/duration/rate flags shared by commands
// that replay a portfolio.
type portfolioFlags struct {
	stockAllocation float64
	years           int
	withdrawalRate  float64
}

func (p *portfolioFlags) register(fs *pflag.FlagSet) {
	fs.Float64VarP(&p.stockAllocation, "stock-allocation", "s", 0, "fraction of the portfolio in stocks, 0..1")
	fs.IntVarP(&p.years, "years", "y", 0, "retirement duration in years")
	fs.Float64VarP(&p.withdrawalRate, "withdrawal-rate", "w", 0, "yearly withdrawal as a fraction of the initial balance")
}

// resolve overlays the flags that were set on the configured portfolio. When
// strict, every flag must be given explicitly.
func (p *portfolioFlags) resolve(fs *pflag.FlagSet, base config.PortfolioConfig, strict bool) (config.PortfolioConfig, error) {
	names := []string{"stock-allocation", "years", "withdrawal-rate"}
	if strict {
		var missing []string
		for _, n := range names {
			if !fs.Changed(n) {
				missing = append(missing, n)
			}
		}
		if len(missing) > 0 {
			return base, fmt.Errorf("required flag(s) %q not set", strings.Join(missing, `", "`))
		}
	}

	out := config.MergePortfolio(base, config.PortfolioConfig{
		StockAllocation: p.stockAllocation,
		Years:           p.years,
		WithdrawalRate:  p.withdrawalRate,
	})
	if fs.Changed("stock-allocation") {
		out.StockAllocation = p.stockAllocation
	}
	if fs.Changed("withdrawal-rate") {
		out.WithdrawalRate = p.withdrawalRate
	}
	if out.Years < 1 {
		return out, fmt.Errorf("years must be >= 1, got %d", out.Years)
	}
	if err := out.ToModelParams().Validate(); err != nil {
		return out, err
	}
	return out, nil
}

// formatFloat prints the shortest round-trip digits of x and always a decimal
// point, so 1 prints as "1.0" and 0.88 as "0.88".
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
