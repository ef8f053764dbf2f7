package marketdata

import (
	"math"

	"github.com/shopspring/decimal"
)

// Decimal is a raw IEEE 754-2008 64-bit decimal in binary integer decimal encoding.
type Decimal uint64

// UnsetDecimal is the provider's sentinel for an absent size.
const UnsetDecimal Decimal = 0x7c00000000000000

const (
	bid64Bias         = 398
	bid64SignMask     = 0x8000000000000000
	bid64SpecialMask  = 0x7800000000000000
	bid64SteeringMask = 0x6000000000000000
	bid64MaxCoeff     = 9999999999999999
)

func (d Decimal) isSpecial() bool {
	return uint64(d)&bid64SpecialMask == bid64SpecialMask
}

// Decode returns the value and whether it is finite.
func (d Decimal) Decode() (decimal.Decimal, bool) {
	bits := uint64(d)
	if d.isSpecial() {
		return decimal.Zero, false
	}

	var coeff uint64
	var exp int32
	if bits&bid64SteeringMask == bid64SteeringMask {
		exp = int32((bits>>51)&0x3ff) - bid64Bias
		coeff = (bits & 0x0007ffffffffffff) | 0x0020000000000000
	} else {
		exp = int32((bits>>53)&0x3ff) - bid64Bias
		coeff = bits & 0x001fffffffffffff
	}

	// non-canonical coefficients are zero
	if coeff > bid64MaxCoeff {
		coeff = 0
	}

	value := decimal.New(int64(coeff), exp)
	if bits&bid64SignMask != 0 {
		value = value.Neg()
	}

	return value, true
}

// DecodeSize converts a provider size to a whole count, rounding half to even.
// Sentinel, NaN, infinite, negative and out of range values all become 0.
func DecodeSize(d Decimal) uint32 {
	if d == UnsetDecimal {
		return 0
	}

	value, ok := d.Decode()
	if !ok || value.IsNegative() {
		return 0
	}

	rounded := value.RoundBank(0)
	if rounded.GreaterThan(decimal.NewFromInt(math.MaxUint32)) {
		return 0
	}

	return uint32(rounded.IntPart())
}

// NewDecimal encodes a non-negative integer with a zero exponent.
func NewDecimal(n uint64) Decimal {
	return NewDecimalWithExponent(n, 0)
}

func NewDecimalWithExponent(coeff uint64, exp int32) Decimal {
	return Decimal(uint64(exp+bid64Bias)<<53 | (coeff & 0x001fffffffffffff))
}

// ParseDecimal encodes a plain decimal string such as "12" or "2.5".
func ParseDecimal(s string) (Decimal, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return UnsetDecimal, err
	}

	if value.IsNegative() {
		return NewDecimalWithExponent(uint64(value.Neg().Coefficient().Int64()), value.Exponent()) | bid64SignMask, nil
	}

	return NewDecimalWithExponent(uint64(value.Coefficient().Int64()), value.Exponent()), nil
}
