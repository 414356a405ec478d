package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"trinity-backtest/internal/model"
)

// Column names of Shiller's annual "long term stock, bond, interest rate and
// consumption" data set (http://www.econ.yale.edu/~shiller/data.htm).
const (
	ColYear      = "YEAR"
	ColPrice     = "P"
	ColDividends = "D"
	ColRate      = "R"
	ColRateLong  = "RLONG"
	ColCPI       = "CPI"
)

var requiredColumns = []string{ColYear, ColPrice, ColDividends, ColRate, ColRateLong, ColCPI}

// LoadShillerCSV reads market records from a Shiller-format CSV file.
// percentRates converts R and RLONG from percentages to decimal fractions.
func LoadShillerCSV(path string, percentRates bool) ([]model.MarketRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market data: %w", err)
	}
	defer f.Close()

	records, err := ParseShiller(f, percentRates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("records", len(records)).Msg("loaded market data")
	return records, nil
}

// ParseShiller parses a Shiller-format CSV. Columns are located by header name
// (case-insensitive, any order, extra columns ignored); blank lines are skipped.
func ParseShiller(r io.Reader, percentRates bool) ([]model.MarketRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse market data: empty file: %w", model.ErrInsufficientData)
	}
	if err != nil {
		return nil, fmt.Errorf("parse market data header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("parse market data header: missing column %q", col)
		}
	}

	scale := 1.0
	if percentRates {
		scale = 100
	}

	var out []model.MarketRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse market data: %w", err)
		}
		if blank(row) {
			continue
		}
		line, _ := cr.FieldPos(0)

		p := rowParser{row: row, idx: idx, line: line}
		rec := model.MarketRecord{
			Year:      p.intField(ColYear),
			Price:     p.floatField(ColPrice),
			Dividends: p.floatField(ColDividends),
			ShortRate: p.floatField(ColRate) / scale,
			LongRate:  p.floatField(ColRateLong) / scale,
			CPI:       p.floatField(ColCPI),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, rec)
	}
	return out, nil
}

type rowParser struct {
	row  []string
	idx  map[string]int
	line int
	err  error
}

func (p *rowParser) field(col string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	i := p.idx[col]
	if i >= len(p.row) || strings.TrimSpace(p.row[i]) == "" {
		p.err = fmt.Errorf("parse market data: line %d: column %s is empty", p.line, col)
		return "", false
	}
	return strings.TrimSpace(p.row[i]), true
}

func (p *rowParser) floatField(col string) float64 {
	s, ok := p.field(col)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Errorf("parse market data: line %d: column %s: %w", p.line, col, err)
	}
	return v
}

func (p *rowParser) intField(col string) int {
	s, ok := p.field(col)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("parse market data: line %d: column %s: %w", p.line, col, err)
	}
	return v
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
