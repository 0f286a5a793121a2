// Package swapmath computes the result of a single swap step bounded by a
// target sqrt price.
package swapmath

import (
	fm "github.com/avelar-labs/clmm-math/lib/fullmath"
	sqrtmath "github.com/avelar-labs/clmm-math/lib/sqrtprice_math"
	ui "github.com/holiman/uint256"
)

// MaxFeePips is the fee denominator; feePips is expressed in hundredths of a
// basis point.
const MaxFeePips = 1_000_000

var maxFee = ui.NewInt(MaxFeePips)

// ComputeSwapStep moves the price from sqrtPriceCurrentX96 toward
// sqrtPriceTargetX96 as far as amountRemaining allows. A non-negative
// amountRemaining is an exact input (fee deducted from it), a negative one an
// exact output (two's complement). Returns the price reached, the input
// consumed, the output produced and the fee taken.
func ComputeSwapStep(sqrtPriceCurrentX96, sqrtPriceTargetX96, liquidity, amountRemaining *ui.Int, feePips int) (sqrtPriceNextX96, amountIn, amountOut, feeAmount *ui.Int, err error) {
	zeroForOne := !sqrtPriceCurrentX96.Lt(sqrtPriceTargetX96)
	exactIn := amountRemaining.Sign() >= 0
	fee := ui.NewInt(uint64(feePips))
	feeComplement := new(ui.Int).Sub(maxFee, fee)

	if exactIn {
		amountRemainingLessFee := new(ui.Int).Div(new(ui.Int).Mul(amountRemaining, feeComplement), maxFee)
		if zeroForOne {
			amountIn, err = sqrtmath.GetAmount0Delta(sqrtPriceTargetX96, sqrtPriceCurrentX96, liquidity, true)
		} else {
			amountIn, err = sqrtmath.GetAmount1Delta(sqrtPriceCurrentX96, sqrtPriceTargetX96, liquidity, true)
		}
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if !amountRemainingLessFee.Lt(amountIn) {
			sqrtPriceNextX96 = sqrtPriceTargetX96.Clone()
		} else {
			sqrtPriceNextX96, err = sqrtmath.GetNextSqrtPriceFromInput(sqrtPriceCurrentX96, liquidity, amountRemainingLessFee, zeroForOne)
			if err != nil {
				return nil, nil, nil, nil, err
			}
		}
	} else {
		if zeroForOne {
			amountOut, err = sqrtmath.GetAmount1Delta(sqrtPriceTargetX96, sqrtPriceCurrentX96, liquidity, false)
		} else {
			amountOut, err = sqrtmath.GetAmount0Delta(sqrtPriceCurrentX96, sqrtPriceTargetX96, liquidity, false)
		}
		if err != nil {
			return nil, nil, nil, nil, err
		}
		amountOutRequested := new(ui.Int).Neg(amountRemaining)
		if !amountOutRequested.Lt(amountOut) {
			sqrtPriceNextX96 = sqrtPriceTargetX96.Clone()
		} else {
			sqrtPriceNextX96, err = sqrtmath.GetNextSqrtPriceFromOutput(sqrtPriceCurrentX96, liquidity, amountOutRequested, zeroForOne)
			if err != nil {
				return nil, nil, nil, nil, err
			}
		}
	}

	reachedTarget := sqrtPriceTargetX96.Eq(sqrtPriceNextX96)

	if zeroForOne {
		if !(reachedTarget && exactIn) {
			amountIn, err = sqrtmath.GetAmount0Delta(sqrtPriceNextX96, sqrtPriceCurrentX96, liquidity, true)
		}
		if err == nil && !(reachedTarget && !exactIn) {
			amountOut, err = sqrtmath.GetAmount1Delta(sqrtPriceNextX96, sqrtPriceCurrentX96, liquidity, false)
		}
	} else {
		if !(reachedTarget && exactIn) {
			amountIn, err = sqrtmath.GetAmount1Delta(sqrtPriceCurrentX96, sqrtPriceNextX96, liquidity, true)
		}
		if err == nil && !(reachedTarget && !exactIn) {
			amountOut, err = sqrtmath.GetAmount0Delta(sqrtPriceCurrentX96, sqrtPriceNextX96, liquidity, false)
		}
	}
	if err != nil {
		return nil, nil, nil, nil, err
	}

	// Cap the output at the requested amount.
	if !exactIn {
		requested := new(ui.Int).Neg(amountRemaining)
		if amountOut.Gt(requested) {
			amountOut = requested
		}
	}

	if exactIn && !sqrtPriceNextX96.Eq(sqrtPriceTargetX96) {
		// The target was not reached, so the entire remainder of the input is
		// taken as fee.
		feeAmount = new(ui.Int).Sub(amountRemaining, amountIn)
	} else {
		feeAmount, err = fm.MulDivRoundingUp(amountIn, fee, feeComplement)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return sqrtPriceNextX96, amountIn, amountOut, feeAmount, nil
}
