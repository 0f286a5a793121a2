// Package sqrtprice_math computes how a swap or a liquidity change moves the
// Q64.96 sqrt price, and the token amounts spanned between two prices at a
// given liquidity. Every operation rounds in the direction that protects pool
// solvency.
package sqrtprice_math

import (
	"errors"

	cons "github.com/avelar-labs/clmm-math/lib/constants"
	fm "github.com/avelar-labs/clmm-math/lib/fullmath"
	sc "github.com/avelar-labs/clmm-math/lib/safecast"
	ui "github.com/holiman/uint256"
)

var (
	ErrInvalidPriceOrLiquidity = errors.New("sqrtprice_math: price and liquidity must be greater than zero")
	ErrInvalidPrice            = errors.New("sqrtprice_math: lower sqrt price must be greater than zero")
	ErrPriceOverflow           = errors.New("sqrtprice_math: amount of currency0 exceeds virtual reserves")
	ErrNotEnoughLiquidity      = errors.New("sqrtprice_math: amount of currency1 exceeds virtual reserves")
)

// GetNextSqrtPriceFromInput returns the price after swapping amountIn of the
// input currency, rounded so the true swap result is never overshot.
func GetNextSqrtPriceFromInput(sqrtPX96, liquidity, amountIn *ui.Int, zeroForOne bool) (*ui.Int, error) {
	if sqrtPX96.IsZero() || liquidity.IsZero() {
		return nil, ErrInvalidPriceOrLiquidity
	}
	if zeroForOne {
		return GetNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountIn, true)
	}
	return GetNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountIn, true)
}

// GetNextSqrtPriceFromOutput returns the price after paying out amountOut of
// the output currency, rounded so the price moves at least far enough to
// produce the requested output.
func GetNextSqrtPriceFromOutput(sqrtPX96, liquidity, amountOut *ui.Int, zeroForOne bool) (*ui.Int, error) {
	if sqrtPX96.IsZero() || liquidity.IsZero() {
		return nil, ErrInvalidPriceOrLiquidity
	}
	if zeroForOne {
		return GetNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountOut, false)
	}
	return GetNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountOut, false)
}

// GetNextSqrtPriceFromAmount0RoundingUp computes the price after adding
// (add=true) or removing (add=false) amount of currency0:
//
//	liquidity * sqrtPX96 / (liquidity +- amount * sqrtPX96 / 2^96)
//
// always rounding up.
func GetNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amount *ui.Int, add bool) (*ui.Int, error) {
	// The general formula does not reduce to an exact identity at zero.
	if amount.IsZero() {
		return sqrtPX96, nil
	}
	numerator1 := new(ui.Int).Lsh(liquidity, cons.Resolution)

	if add {
		product, overflow := new(ui.Int).MulOverflow(amount, sqrtPX96)
		if !overflow {
			denominator, carry := new(ui.Int).AddOverflow(numerator1, product)
			if !carry {
				return fm.MulDivRoundingUp(numerator1, sqrtPX96, denominator)
			}
		}
		// The exact denominator does not fit 256 bits; the rearranged form
		// liquidity / (liquidity / sqrtPX96 + amount) is overflow-safe.
		denominator := new(ui.Int).Add(new(ui.Int).Div(numerator1, sqrtPX96), amount)
		return fm.DivRoundingUp(numerator1, denominator), nil
	}

	product, overflow := new(ui.Int).MulOverflow(amount, sqrtPX96)
	if overflow || !numerator1.Gt(product) {
		return nil, ErrPriceOverflow
	}
	denominator := new(ui.Int).Sub(numerator1, product)
	next, err := fm.MulDivRoundingUp(numerator1, sqrtPX96, denominator)
	if err != nil {
		return nil, err
	}
	return sc.ToUint160(next)
}

// GetNextSqrtPriceFromAmount1RoundingDown computes the price after adding or
// removing amount of currency1, sqrtPX96 +- amount * 2^96 / liquidity, with
// the quotient rounded down when adding and up when removing so the price
// never moves in the counterparty's favor.
func GetNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amount *ui.Int, add bool) (*ui.Int, error) {
	if liquidity.IsZero() {
		return nil, fm.ErrDivisionByZero
	}

	if add {
		var quotient *ui.Int
		if !amount.Gt(cons.MaxUint160) {
			// amount << 96 fits 256 bits, skip the full-precision path.
			quotient = new(ui.Int).Div(new(ui.Int).Lsh(amount, cons.Resolution), liquidity)
		} else {
			var err error
			quotient, err = fm.MulDiv(amount, cons.Q96, liquidity)
			if err != nil {
				return nil, err
			}
		}
		next, carry := new(ui.Int).AddOverflow(sqrtPX96, quotient)
		if carry {
			return nil, sc.ErrCastOverflow
		}
		return sc.ToUint160(next)
	}

	var quotient *ui.Int
	if !amount.Gt(cons.MaxUint160) {
		quotient = fm.DivRoundingUp(new(ui.Int).Lsh(amount, cons.Resolution), liquidity)
	} else {
		var err error
		quotient, err = fm.MulDivRoundingUp(amount, cons.Q96, liquidity)
		if err != nil {
			return nil, err
		}
	}
	if !sqrtPX96.Gt(quotient) {
		return nil, ErrNotEnoughLiquidity
	}
	return new(ui.Int).Sub(sqrtPX96, quotient), nil
}

// GetAmount0Delta returns the currency0 amount spanned between two sqrt
// prices at the given liquidity:
//
//	liquidity * 2^96 * (sqrtB - sqrtA) / (sqrtB * sqrtA)
//
// The price pair may be passed in either order.
func GetAmount0Delta(sqrtPriceAX96, sqrtPriceBX96, liquidity *ui.Int, roundUp bool) (*ui.Int, error) {
	if sqrtPriceAX96.Gt(sqrtPriceBX96) {
		sqrtPriceAX96, sqrtPriceBX96 = sqrtPriceBX96, sqrtPriceAX96
	}
	if sqrtPriceAX96.IsZero() {
		return nil, ErrInvalidPrice
	}

	numerator1 := new(ui.Int).Lsh(liquidity, cons.Resolution)
	numerator2 := new(ui.Int).Sub(sqrtPriceBX96, sqrtPriceAX96)

	if roundUp {
		intermediate, err := fm.MulDivRoundingUp(numerator1, numerator2, sqrtPriceBX96)
		if err != nil {
			return nil, err
		}
		return fm.DivRoundingUp(intermediate, sqrtPriceAX96), nil
	}
	intermediate, err := fm.MulDiv(numerator1, numerator2, sqrtPriceBX96)
	if err != nil {
		return nil, err
	}
	return intermediate.Div(intermediate, sqrtPriceAX96), nil
}

// GetAmount1Delta returns the currency1 amount spanned between two sqrt
// prices at the given liquidity, liquidity * (sqrtB - sqrtA) / 2^96. The
// rounded-up value is the floor quotient plus a correction unit whenever the
// division was inexact.
func GetAmount1Delta(sqrtPriceAX96, sqrtPriceBX96, liquidity *ui.Int, roundUp bool) (*ui.Int, error) {
	if sqrtPriceAX96.Gt(sqrtPriceBX96) {
		sqrtPriceAX96, sqrtPriceBX96 = sqrtPriceBX96, sqrtPriceAX96
	}
	diff := new(ui.Int).Sub(sqrtPriceBX96, sqrtPriceAX96)

	amount1, err := fm.MulDiv96(liquidity, diff)
	if err != nil {
		return nil, err
	}
	if roundUp && !new(ui.Int).MulMod(liquidity, diff, cons.Q96).IsZero() {
		amount1.Add(amount1, cons.One)
	}
	return amount1, nil
}

// GetAmount0DeltaRounded is the signed-liquidity variant of GetAmount0Delta:
// a negative liquidity delta rounds down and negates the result so removing
// liquidity never overstates what is returned, a positive delta rounds up so
// adding liquidity never understates what must be deposited.
func GetAmount0DeltaRounded(sqrtPriceAX96, sqrtPriceBX96, liquidity *ui.Int) (*ui.Int, error) {
	if liquidity.Sign() < 0 {
		amount, err := GetAmount0Delta(sqrtPriceAX96, sqrtPriceBX96, new(ui.Int).Neg(liquidity), false)
		if err != nil {
			return nil, err
		}
		return amount.Neg(amount), nil
	}
	return GetAmount0Delta(sqrtPriceAX96, sqrtPriceBX96, liquidity, true)
}

// GetAmount1DeltaRounded is the signed-liquidity variant of GetAmount1Delta.
func GetAmount1DeltaRounded(sqrtPriceAX96, sqrtPriceBX96, liquidity *ui.Int) (*ui.Int, error) {
	if liquidity.Sign() < 0 {
		amount, err := GetAmount1Delta(sqrtPriceAX96, sqrtPriceBX96, new(ui.Int).Neg(liquidity), false)
		if err != nil {
			return nil, err
		}
		return amount.Neg(amount), nil
	}
	return GetAmount1Delta(sqrtPriceAX96, sqrtPriceBX96, liquidity, true)
}
