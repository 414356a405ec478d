package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"trinity-backtest/internal/analysis"
	"trinity-backtest/internal/backtest"
	"trinity-backtest/internal/config"
	"trinity-backtest/internal/data"
	"trinity-backtest/internal/model"
	"trinity-backtest/internal/returns"
	"trinity-backtest/internal/strategy"
)

func successRate(rets model.Returns, p config.PortfolioConfig) (float64, error) {
	return backtest.CalcSuccessRate(rets, p.StockAllocation, p.Years, p.WithdrawalRate)
}

// output returns stdout, or a created file when path is set.
func output(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newReturnsCmd(a *app, stdout io.Writer) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "returns",
		Short: "Print real stock and bond returns per year as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rets, err := a.loadReturns()
			if err != nil {
				return err
			}
			if out != "" {
				if err := data.WriteReturnsCSV(out, rets); err != nil {
					return err
				}
				log.Info().Str("path", out).Int("years", len(rets)).Msg("wrote returns")
				return nil
			}
			return data.EncodeReturnsCSV(stdout, rets)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write CSV to this file instead of stdout")
	return cmd
}

func newBondsCmd(a *app, stdout io.Writer) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "bonds",
		Short: "Print nominal bond ladder returns per year as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.loadRecords()
			if err != nil {
				return err
			}
			byYear, err := returns.BondReturns(records)
			if err != nil {
				return err
			}

			w, closeOut, err := output(stdout, out)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "year,bond_return")
			for _, r := range records {
				v, ok := byYear[r.Year]
				if !ok || r.Year < a.cfg.Study.StartYear || r.Year > a.cfg.Study.EndYear {
					continue
				}
				fmt.Fprintf(w, "%d,%s\n", r.Year, strconv.FormatFloat(v, 'f', 4, 64))
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write CSV to this file instead of stdout")
	return cmd
}

func newPeriodsCmd(a *app, stdout io.Writer) *cobra.Command {
	var years int
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List the historical periods a duration covers in the study window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			periods := backtest.GetPeriods(a.cfg.Study.StartYear, a.cfg.Study.EndYear, years)
			for _, p := range periods {
				fmt.Fprintln(stdout, p)
			}
			log.Debug().Int("periods", len(periods)).Msg("listed periods")
			return nil
		},
	}
	cmd.Flags().IntVarP(&years, "years", "y", 30, "retirement duration in years")
	return cmd
}

func newLedgerCmd(a *app, stdout io.Writer) *cobra.Command {
	var (
		pf    portfolioFlags
		start int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Replay one period and print its year-by-year ledger as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pf.resolve(cmd.Flags(), a.cfg.Portfolio, a.configPath == "")
			if err != nil {
				return err
			}
			strat, err := strategy.ByName(p.Strategy)
			if err != nil {
				return err
			}
			rets, err := a.loadReturns()
			if err != nil {
				return err
			}

			period := backtest.Period{Start: start, End: start + p.Years - 1}
			res, err := backtest.New().Run(rets, period, p.ToModelParams(), strat)
			if err != nil {
				return err
			}
			log.Info().
				Str("period", period.String()).
				Bool("survived", res.Survived).
				Float64("final_balance", res.FinalBalance).
				Msg("replayed period")

			if out != "" {
				return backtest.WriteLedgerCSV(out, res.Ledger)
			}
			return backtest.EncodeLedgerCSV(stdout, res.Ledger)
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().IntVar(&start, "start", 0, "first year of the period")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write CSV to this file instead of stdout")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newGridCmd(a *app, stdout io.Writer) *cobra.Command {
	var (
		workers int
		rank    bool
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print success rates for every allocation, duration and withdrawal rate",
		Long: `grid reproduces the Trinity study tables: one success rate per combination of
stock allocation, duration and withdrawal rate from the grid section of the
config (the published study grid by default).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rets, err := a.loadReturns()
			if err != nil {
				return err
			}
			first, last, ok := rets.YearRange()
			if !ok {
				return fmt.Errorf("study window %d-%d: %w", a.cfg.Study.StartYear, a.cfg.Study.EndYear, backtest.ErrNoPeriods)
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Grid.Workers
			}

			results, err := analysis.ScanGrid(cmd.Context(), rets, first, last, a.cfg.Grid.Grid, workers)
			if err != nil {
				return err
			}
			if rank {
				results = analysis.RankBySuccessRate(results)
			}
			return printGrid(stdout, results)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&rank, "rank", false, "sort by success rate instead of table order")
	return cmd
}

func printGrid(out io.Writer, results []analysis.GridResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "stocks\tyears\trate\tperiods\tsuccess\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%.0f%%\t%d\t%.1f%%\t%d\t%.0f%%\t\n",
			r.StockAllocation*100, r.Years, r.WithdrawalRate*100, r.Periods, r.SuccessRate*100)
	}
	return tw.Flush()
}
