// Package liquidity_amounts converts between liquidity and the token amounts
// backing a position over a sqrt price range.
package liquidity_amounts

import (
	cons "github.com/avelar-labs/clmm-math/lib/constants"
	"github.com/avelar-labs/clmm-math/lib/fullmath"
	sqrtmath "github.com/avelar-labs/clmm-math/lib/sqrtprice_math"
	ui "github.com/holiman/uint256"
)

// GetLiquidityForAmount0 returns the maximum liquidity amount0 of currency0
// can fund over the range [sqrtPriceAX96, sqrtPriceBX96].
func GetLiquidityForAmount0(sqrtPriceAX96, sqrtPriceBX96, amount0 *ui.Int) (*ui.Int, error) {
	if sqrtPriceAX96.Gt(sqrtPriceBX96) {
		sqrtPriceAX96, sqrtPriceBX96 = sqrtPriceBX96, sqrtPriceAX96
	}
	intermediate, err := fullmath.MulDiv(sqrtPriceAX96, sqrtPriceBX96, cons.Q96)
	if err != nil {
		return nil, err
	}
	return fullmath.MulDiv(amount0, intermediate, new(ui.Int).Sub(sqrtPriceBX96, sqrtPriceAX96))
}

// GetLiquidityForAmount1 returns the maximum liquidity amount1 of currency1
// can fund over the range [sqrtPriceAX96, sqrtPriceBX96].
func GetLiquidityForAmount1(sqrtPriceAX96, sqrtPriceBX96, amount1 *ui.Int) (*ui.Int, error) {
	if sqrtPriceAX96.Gt(sqrtPriceBX96) {
		sqrtPriceAX96, sqrtPriceBX96 = sqrtPriceBX96, sqrtPriceAX96
	}
	return fullmath.MulDiv(amount1, cons.Q96, new(ui.Int).Sub(sqrtPriceBX96, sqrtPriceAX96))
}

// GetLiquidityForAmounts returns the maximum liquidity both token amounts can
// fund at the current price sqrtPriceX96. Below the range only currency0 is
// used, above it only currency1, inside it the smaller of the two.
func GetLiquidityForAmounts(sqrtPriceX96, sqrtPriceAX96, sqrtPriceBX96, amount0, amount1 *ui.Int) (*ui.Int, error) {
	if sqrtPriceAX96.Gt(sqrtPriceBX96) {
		sqrtPriceAX96, sqrtPriceBX96 = sqrtPriceBX96, sqrtPriceAX96
	}
	switch {
	case !sqrtPriceX96.Gt(sqrtPriceAX96):
		return GetLiquidityForAmount0(sqrtPriceAX96, sqrtPriceBX96, amount0)
	case sqrtPriceX96.Lt(sqrtPriceBX96):
		liquidity0, err := GetLiquidityForAmount0(sqrtPriceX96, sqrtPriceBX96, amount0)
		if err != nil {
			return nil, err
		}
		liquidity1, err := GetLiquidityForAmount1(sqrtPriceAX96, sqrtPriceX96, amount1)
		if err != nil {
			return nil, err
		}
		if liquidity0.Lt(liquidity1) {
			return liquidity0, nil
		}
		return liquidity1, nil
	default:
		return GetLiquidityForAmount1(sqrtPriceAX96, sqrtPriceBX96, amount1)
	}
}

// GetAmountsForLiquidity returns the token amounts backing liquidity over the
// range [sqrtPriceAX96, sqrtPriceBX96] at the current price sqrtPriceX96,
// rounded down.
func GetAmountsForLiquidity(sqrtPriceX96, sqrtPriceAX96, sqrtPriceBX96, liquidity *ui.Int) (amount0, amount1 *ui.Int, err error) {
	if sqrtPriceAX96.Gt(sqrtPriceBX96) {
		sqrtPriceAX96, sqrtPriceBX96 = sqrtPriceBX96, sqrtPriceAX96
	}
	amount0 = new(ui.Int)
	amount1 = new(ui.Int)
	switch {
	case !sqrtPriceX96.Gt(sqrtPriceAX96):
		amount0, err = sqrtmath.GetAmount0Delta(sqrtPriceAX96, sqrtPriceBX96, liquidity, false)
	case sqrtPriceX96.Lt(sqrtPriceBX96):
		amount0, err = sqrtmath.GetAmount0Delta(sqrtPriceX96, sqrtPriceBX96, liquidity, false)
		if err != nil {
			return nil, nil, err
		}
		amount1, err = sqrtmath.GetAmount1Delta(sqrtPriceAX96, sqrtPriceX96, liquidity, false)
	default:
		amount1, err = sqrtmath.GetAmount1Delta(sqrtPriceAX96, sqrtPriceBX96, liquidity, false)
	}
	if err != nil {
		return nil, nil, err
	}
	return amount0, amount1, nil
}
