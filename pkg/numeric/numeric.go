// Package numeric provides the exact arithmetic used by every pot and reward
// formula. Amounts are whole lovelace held in *big.Int, ratios are
// decimal.Decimal values. Divisions keep Precision significant digits and
// round toward negative infinity; products are exact and floored only where
// a formula says so.
package numeric

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Precision is the number of significant digits kept by Divide.
const Precision int32 = 30

var (
	// Zero is the decimal zero.
	Zero = decimal.Zero
	// One is the decimal one.
	One = decimal.NewFromInt(1)
)

// Divide returns a/b with Precision significant digits, rounded toward
// negative infinity. It panics if b is zero, like decimal.Decimal.Div.
func Divide(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		panic("numeric: division by zero")
	}
	if a.IsZero() {
		return Zero
	}
	negative := a.Sign()*b.Sign() < 0
	x, y := a.Abs(), b.Abs()

	// The leading digit of x/y sits at 10^(ax-ay) or 10^(ax-ay-1), so
	// this scale yields Precision or Precision+1 digits.
	places := Precision - (adjustedExponent(x) - adjustedExponent(y))
	q, r := x.QuoRem(y, places)
	if int32(q.NumDigits()) > Precision {
		places--
		q, r = x.QuoRem(y, places)
	}
	if negative {
		q = q.Neg()
		if !r.IsZero() {
			q = q.Sub(decimal.New(1, -places))
		}
	}
	return q
}

// adjustedExponent is the power of ten of the most significant digit.
func adjustedExponent(d decimal.Decimal) int32 {
	return d.Exponent() + int32(d.NumDigits()) - 1
}

// MultiplyAndFloor multiplies all factors exactly and floors the product.
func MultiplyAndFloor(factors ...decimal.Decimal) *big.Int {
	if len(factors) == 0 {
		return new(big.Int)
	}
	product := factors[0]
	for _, f := range factors[1:] {
		product = product.Mul(f)
	}
	return Floor(product)
}

// Floor returns the greatest integer less than or equal to d.
func Floor(d decimal.Decimal) *big.Int {
	return d.Floor().BigInt()
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThanOrEqual(b) {
		return a
	}
	return b
}

// RoundHalfEven rounds d to the given number of decimal places using
// banker's rounding. Only display helpers use it.
func RoundHalfEven(d decimal.Decimal, places int32) decimal.Decimal {
	return d.RoundBank(places)
}

// FromLovelace converts an amount into a decimal. A nil amount is zero.
func FromLovelace(amount *big.Int) decimal.Decimal {
	if amount == nil {
		return Zero
	}
	return decimal.NewFromBigInt(amount, 0)
}

// FromInt converts a count into a decimal.
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Lovelace returns a new *big.Int holding v.
func Lovelace(v int64) *big.Int {
	return big.NewInt(v)
}

// Add returns a+b without touching either operand. Nil counts as zero.
func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(orZero(a), orZero(b))
}

// Sub returns a-b without touching either operand. Nil counts as zero.
func Sub(a, b *big.Int) *big.Int {
	return new(big.Int).Sub(orZero(a), orZero(b))
}

// Sum adds all amounts into a new *big.Int.
func Sum(amounts ...*big.Int) *big.Int {
	total := new(big.Int)
	for _, a := range amounts {
		if a != nil {
			total.Add(total, a)
		}
	}
	return total
}

// Copy returns an independent copy of a, or zero for nil.
func Copy(a *big.Int) *big.Int {
	return new(big.Int).Set(orZero(a))
}

// IsZero reports whether a is nil or zero.
func IsZero(a *big.Int) bool {
	return a == nil || a.Sign() == 0
}

// LessOrEqual reports a <= b. Nil counts as zero.
func LessOrEqual(a, b *big.Int) bool {
	return orZero(a).Cmp(orZero(b)) <= 0
}

// LessThan reports a < b. Nil counts as zero.
func LessThan(a, b *big.Int) bool {
	return orZero(a).Cmp(orZero(b)) < 0
}

// Equal reports a == b. Nil counts as zero.
func Equal(a, b *big.Int) bool {
	return orZero(a).Cmp(orZero(b)) == 0
}

var zero = new(big.Int)

func orZero(a *big.Int) *big.Int {
	if a == nil {
		return zero
	}
	return a
}
