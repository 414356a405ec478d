package returns_test

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trinity-backtest/internal/backtest"
	"trinity-backtest/internal/bonds"
	"trinity-backtest/internal/data"
	"trinity-backtest/internal/model"
	"trinity-backtest/internal/returns"
)

// These tests compare against published figures and need data files that are
// not distributed with the repository:
//
//	TRINITY_SHILLER_CSV   Shiller annual data (YEAR,P,D,R,RLONG,CPI)
//	TRINITY_BONDS_CSV     bond simulator spreadsheet export (year,total_return)
//	TRINITY_OUTCOMES_CSV  study success rates (stock_allocation,years,withdrawal_rate,success_rate)

func envFile(t *testing.T, name string) string {
	t.Helper()
	path := os.Getenv(name)
	if path == "" {
		t.Skipf("%s not set", name)
	}
	return path
}

func readCSV(t *testing.T, path string) []map[string]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(row))
		for i, h := range rows[0] {
			m[h] = row[i]
		}
		out = append(out, m)
	}
	return out
}

func parseFloat(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v
}

func loadShiller(t *testing.T) []model.MarketRecord {
	t.Helper()
	records, err := data.LoadShillerCSV(envFile(t, "TRINITY_SHILLER_CSV"), true)
	require.NoError(t, err)
	return records
}

func TestSimulateReturns_MatchesSpreadsheet(t *testing.T) {
	records := loadShiller(t)
	expected := readCSV(t, envFile(t, "TRINITY_BONDS_CSV"))

	rates := make([]model.RatePair, len(records))
	for i, r := range records {
		rates[i] = r.Rates()
	}
	simulated, err := bonds.SimulateReturns(rates)
	require.NoError(t, err)

	n := min(len(simulated), len(expected))
	require.Positive(t, n)
	for i := 0; i < n; i++ {
		want := parseFloat(t, expected[i]["total_return"])
		assert.InDelta(t, want, simulated[i], 0.0002, "year %s", expected[i]["year"])
	}
}

func TestCalcSuccessRate_MatchesStudy(t *testing.T) {
	rets, err := returns.Compute(loadShiller(t))
	require.NoError(t, err)
	cases := readCSV(t, envFile(t, "TRINITY_OUTCOMES_CSV"))
	window := rets.Between(1926, 1995)

	var total float64
	for _, c := range cases {
		years, err := strconv.Atoi(c["years"])
		require.NoError(t, err)
		got, err := backtest.CalcSuccessRate(window,
			parseFloat(t, c["stock_allocation"]), years, parseFloat(t, c["withdrawal_rate"]))
		require.NoError(t, err)
		total += math.Abs(got - parseFloat(t, c["success_rate"]))
	}

	// Shiller's long rates stand in for the study's Ibbotson bond series, so
	// results only match on average.
	mae := total / float64(len(cases))
	assert.Less(t, mae, 0.03)
}

func TestCalcSuccessRate_TrinityReference(t *testing.T) {
	rets, err := returns.Compute(loadShiller(t))
	require.NoError(t, err)

	got, err := backtest.CalcSuccessRate(rets.Between(1926, 1995), 0.75, 20, 0.04)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}
