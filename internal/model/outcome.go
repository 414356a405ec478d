package model

// Outcome labels the state of a portfolio at the end of a simulated year.
// Keep these values stable; they are intended for CSV output.
type Outcome string

const (
	OutcomeGrowing   Outcome = "GROWING"
	OutcomeShrinking Outcome = "SHRINKING"
	OutcomeDepleted  Outcome = "DEPLETED"
)

func OutcomeFromBalances(start, end float64) Outcome {
	switch {
	case end <= 0:
		return OutcomeDepleted
	case end < start:
		return OutcomeShrinking
	default:
		return OutcomeGrowing
	}
}
