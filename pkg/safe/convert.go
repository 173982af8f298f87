// Package safe provides numeric conversions and arithmetic with overflow checks.
package safe

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrNegative   = errors.New("negative value")
	ErrFractional = errors.New("fractional value")
	ErrOverflow   = errors.New("value overflows")
)

// Uint32 converts signed or unsigned integers to uint32 with range validation.
func Uint32[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d: %w", v, ErrNegative)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range: %w", v, ErrOverflow)
	}
	return uint32(v), nil
}

// Quantity converts a base-unit quantity into int64. It must be a non-negative integer.
func Quantity(d decimal.Decimal) (int64, error) {
	switch {
	case d.IsNegative():
		return 0, fmt.Errorf("quantity %s: %w", d, ErrNegative)
	case !d.IsInteger():
		return 0, fmt.Errorf("quantity %s: %w", d, ErrFractional)
	case !d.BigInt().IsInt64():
		return 0, fmt.Errorf("quantity %s: %w", d, ErrOverflow)
	}
	return d.IntPart(), nil
}

// Add returns a+b, or ErrOverflow when the sum does not fit int64.
func Add(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return a + b, nil
}
