// Package fullmath provides multiply-then-divide primitives whose 512-bit
// intermediate product never overflows, even when the operands do not fit the
// final result width.
package fullmath

import (
	"errors"

	cons "github.com/avelar-labs/clmm-math/lib/constants"
	ui "github.com/holiman/uint256"
)

var (
	ErrDivisionByZero = errors.New("fullmath: division by zero")
	ErrMulDivOverflow = errors.New("fullmath: muldiv result overflows 256 bits")
)

// MulDiv returns floor(a * b / denominator). The product a*b is evaluated at
// full 512-bit precision before the division.
func MulDiv(a, b, denominator *ui.Int) (*ui.Int, error) {
	if denominator.IsZero() {
		return nil, ErrDivisionByZero
	}
	result, overflow := new(ui.Int).MulDivOverflow(a, b, denominator)
	if overflow {
		return nil, ErrMulDivOverflow
	}
	return result, nil
}

// MulDivRoundingUp returns ceil(a * b / denominator).
func MulDivRoundingUp(a, b, denominator *ui.Int) (*ui.Int, error) {
	result, err := MulDiv(a, b, denominator)
	if err != nil {
		return nil, err
	}
	if !new(ui.Int).MulMod(a, b, denominator).IsZero() {
		if result.Eq(cons.MaxUint256) {
			return nil, ErrMulDivOverflow
		}
		result.Add(result, cons.One)
	}
	return result, nil
}

// MulDiv96 returns floor(a * b / 2^96).
func MulDiv96(a, b *ui.Int) (*ui.Int, error) {
	return MulDiv(a, b, cons.Q96)
}

// DivRoundingUp returns ceil(x / y). The caller must guarantee y != 0.
func DivRoundingUp(x, y *ui.Int) *ui.Int {
	quotient := new(ui.Int).Div(x, y)
	if !new(ui.Int).Mod(x, y).IsZero() {
		quotient.Add(quotient, cons.One)
	}
	return quotient
}
