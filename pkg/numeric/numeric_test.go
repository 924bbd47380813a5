package numeric

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivide_KeepsThirtySignificantDigits(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"one third", "1", "3", "0.333333333333333333333333333333"},
		{"two thirds floors", "2", "3", "0.666666666666666666666666666666"},
		{"integral quotient", "9", "3", "3"},
		{"large over small", "10", "3", "3.33333333333333333333333333333"},
		{"tiny ratio", "1", "30000000000000000", "0.0000000000000000333333333333333333333333333333"},
		{"negative floors down", "-1", "3", "-0.333333333333333333333333333334"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Divide(decimal.RequireFromString(tt.a), decimal.RequireFromString(tt.b))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDivide_ZeroNumerator(t *testing.T) {
	assert.True(t, Divide(Zero, FromInt(7)).IsZero())
}

func TestDivide_PanicsOnZeroDenominator(t *testing.T) {
	assert.Panics(t, func() { Divide(One, Zero) })
}

func TestMultiplyAndFloor(t *testing.T) {
	reserves := FromLovelace(big.NewInt(13_888_022_852_926_644))
	rho := decimal.RequireFromString("0.003")
	got := MultiplyAndFloor(reserves, rho, One)
	assert.Equal(t, "41664068558779", got.String())

	assert.Equal(t, "0", MultiplyAndFloor().String())
	assert.Equal(t, "-2", MultiplyAndFloor(decimal.RequireFromString("-1.5")).String())
}

func TestMin(t *testing.T) {
	a := decimal.RequireFromString("0.002")
	b := decimal.RequireFromString("0.0021")
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Min(b, a).Equal(a))
}

func TestRoundHalfEven(t *testing.T) {
	assert.Equal(t, "0.12", RoundHalfEven(decimal.RequireFromString("0.125"), 2).String())
	assert.Equal(t, "0.14", RoundHalfEven(decimal.RequireFromString("0.135"), 2).String())
}

func TestLovelaceHelpers(t *testing.T) {
	a := big.NewInt(10)
	b := big.NewInt(4)
	require.Equal(t, "14", Add(a, b).String())
	require.Equal(t, "6", Sub(a, b).String())
	require.Equal(t, "10", a.String(), "operands must not be mutated")
	require.Equal(t, "14", Sum(a, nil, b).String())
	require.True(t, IsZero(nil))
	require.True(t, LessOrEqual(nil, b))
	require.True(t, LessThan(b, a))
	require.True(t, Equal(Copy(a), a))
}
