package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnsYearRange(t *testing.T) {
	_, _, ok := Returns{}.YearRange()
	assert.False(t, ok)

	r := Returns{1930: {}, 1926: {}, 1995: {}}
	first, last, ok := r.YearRange()
	assert.True(t, ok)
	assert.Equal(t, 1926, first)
	assert.Equal(t, 1995, last)
	assert.Equal(t, []int{1926, 1930, 1995}, r.Years())
}

func TestReturnsBetween(t *testing.T) {
	r := Returns{1925: {Stocks: 1}, 1926: {Stocks: 2}, 1927: {Stocks: 3}, 1928: {Stocks: 4}}

	sub := r.Between(1926, 1927)

	assert.Equal(t, Returns{1926: {Stocks: 2}, 1927: {Stocks: 3}}, sub)
	assert.Len(t, r, 4, "source map must not be modified")
}
