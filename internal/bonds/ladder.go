package bonds

import "math"

// Rungs is the number of bonds held by a Ladder, one per year of maturity.
const Rungs = 10

// Bond is one position in a ladder. Both fields are fixed at purchase.
type Bond struct {
	Par    float64
	Coupon float64
}

// Ladder is a rolling ten-bond fund. Position 0 matures next year and position
// 9 is the 10-year bond bought most recently.
//
// The bonds live in a fixed ring buffer; head is the array index of position 0.
// A Ladder is owned by a single simulation and is not safe for concurrent use.
type Ladder struct {
	bonds [Rungs]Bond
	head  int
}

// NewLadder bootstraps a ladder from an initial $1 investment at a flat rate.
//
// Bond n gets par (1+rate)^n, i.e. $1 plus the reinvested coupons of the bonds
// bought before it, and every bond carries rate as its coupon.
func NewLadder(rate float64) *Ladder {
	l := &Ladder{}
	for n := 0; n < Rungs; n++ {
		l.bonds[n] = Bond{Par: math.Pow(1+rate, float64(n)), Coupon: rate}
	}
	return l
}

// Len is always Rungs.
func (l *Ladder) Len() int { return len(l.bonds) }

// At returns the bond at position i (0 matures next year).
func (l *Ladder) At(i int) Bond {
	return l.bonds[(l.head+i)%Rungs]
}

// Bonds returns the holdings ordered by ascending maturity.
func (l *Ladder) Bonds() []Bond {
	out := make([]Bond, Rungs)
	for i := range out {
		out[i] = l.At(i)
	}
	return out
}

// Step advances the ladder by one year. This year's coupons plus the principal
// of the maturing bond are reinvested in a new 10-year bond at longRate.
func (l *Ladder) Step(longRate float64) {
	capital := 0.0
	for i := 0; i < Rungs; i++ {
		b := l.At(i)
		capital += b.Coupon * b.Par
	}
	capital += l.bonds[l.head].Par

	// The maturing slot becomes the new back of the ladder.
	l.bonds[l.head] = Bond{Par: capital, Coupon: longRate}
	l.head = (l.head + 1) % Rungs
}

// NAV returns the net asset value of the ladder given the current 1-year and
// 10-year rates. Each bond is discounted at the interpolated rate for its
// remaining maturity.
func (l *Ladder) NAV(short, long float64) float64 {
	nav := 0.0
	for i := 0; i < Rungs; i++ {
		b := l.At(i)
		maturity := i + 1
		rate := InterpolatedRate(short, long, maturity)
		nav -= PV(rate, maturity, b.Coupon*b.Par, b.Par)
	}
	return nav
}
