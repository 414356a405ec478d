package backtest

import "fmt"

// Period is an inclusive span of years replayed as one independent trial.
type Period struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (p Period) Years() int { return p.End - p.Start + 1 }

func (p Period) String() string { return fmt.Sprintf("%d-%d", p.Start, p.End) }

// GetPeriods returns every run of duration consecutive years that falls
// completely within [startYear, endYear], ordered by start year. A duration
// longer than the span, or below one year, yields no periods.
func GetPeriods(startYear, endYear, duration int) []Period {
	if duration < 1 {
		return nil
	}
	var periods []Period
	for year := startYear; year+duration-1 <= endYear; year++ {
		periods = append(periods, Period{Start: year, End: year + duration - 1})
	}
	return periods
}
