package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	cases := []struct {
		name   string
		x      float64
		places int32
		want   float64
	}{
		{"already rounded", 1.0, 2, 1.0},
		{"half to even down", 0.125, 2, 0.12},
		{"half to even up", 0.135, 2, 0.14},
		{"four places", 0.052349, 4, 0.0523},
		{"negative", -0.031251, 4, -0.0313},
		{"zero", 0, 4, 0},
		{"binary below tie", 2.675, 2, 2.67},
		{"binary above tie", 1.0015, 3, 1.002},
		{"exact tie four places", 0.03125, 4, 0.0312},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Round(tc.x, tc.places))
		})
	}
}

func TestRound_NonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}
