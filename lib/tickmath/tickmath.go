// Package tickmath converts between ticks on the 1.0001-ratio geometric price
// ladder and Q64.96 sqrt prices.
package tickmath

import (
	"errors"
	"math/big"

	cons "github.com/avelar-labs/clmm-math/lib/constants"
	ui "github.com/holiman/uint256"
)

const (
	// MinTick is the minimum tick that can be used on any pool.
	MinTick int = -887272
	// MaxTick is the maximum tick that can be used on any pool.
	MaxTick int = -MinTick

	MinTickSpacing int = 1
	MaxTickSpacing int = 32767
)

var (
	// MinSqrtPrice is the sqrt price at MinTick, the lowest value
	// GetSqrtPriceAtTick can return.
	MinSqrtPrice = ui.NewInt(4295128739)
	// MaxSqrtPrice is the sqrt price at MaxTick, the highest value
	// GetSqrtPriceAtTick can return.
	MaxSqrtPrice *ui.Int

	ErrInvalidTick      = errors.New("tickmath: tick out of range")
	ErrInvalidSqrtPrice = errors.New("tickmath: sqrt price out of range")
)

func init() {
	maxBig, _ := new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)
	MaxSqrtPrice, _ = ui.FromBig(maxBig)
}

var (
	// sqrtRatioOdd is 2^128 / sqrt(1.0001), applied when bit 0 of the
	// absolute tick is set; sqrtRatioOne is 1 in Q128.128.
	sqrtRatioOdd = ui.MustFromHex("0xfffcb933bd6fad37aa2d162d1a594001")
	sqrtRatioOne = ui.MustFromHex("0x100000000000000000000000000000000")

	// sqrtRatios[k-1] is 2^128 / 1.0001^(2^(k-1)) for bit k of the absolute
	// tick, k = 1..19.
	sqrtRatios = [19]*ui.Int{
		ui.MustFromHex("0xfff97272373d413259a46990580e213a"),
		ui.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc"),
		ui.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0"),
		ui.MustFromHex("0xffcb9843d60f6159c9db58835c926644"),
		ui.MustFromHex("0xff973b41fa98c081472e6896dfb254c0"),
		ui.MustFromHex("0xff2ea16466c96a3843ec78b326b52861"),
		ui.MustFromHex("0xfe5dee046a99a2a811c461f1969c3053"),
		ui.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4"),
		ui.MustFromHex("0xf987a7253ac413176f2b074cf7815e54"),
		ui.MustFromHex("0xf3392b0822b70005940c7a398e4b70f3"),
		ui.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9"),
		ui.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
		ui.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5"),
		ui.MustFromHex("0x70d869a156d2a1b890bb3df62baf32f7"),
		ui.MustFromHex("0x31be135f97d08fd981231505542fcfa6"),
		ui.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9"),
		ui.MustFromHex("0x5d6af8dedb81196699c329225ee604"),
		ui.MustFromHex("0x2216e584f5fa1ea926041bedfe98"),
		ui.MustFromHex("0x48a170391f7dc42444e8fa2"),
	}

	maxUint32 = ui.NewInt(0xffffffff)

	// 2^64 / log2(sqrt(1.0001)), converts the base-2 log estimate to base
	// sqrt(1.0001).
	logBase = ui.MustFromHex("0x3627A301D71055774C85")

	// Error bounds of the log estimate, Q128.128.
	tickLowErr  = ui.MustFromHex("0x28F6481AB7F045A5AF012A19D003AAA")
	tickHighErr = ui.MustFromHex("0xDB2DF09E81959A81455E260799A0632F")
)

// GetSqrtPriceAtTick returns sqrt(1.0001^tick) * 2^96 as a Q64.96, rounded up
// so that GetTickAtSqrtPrice of the result recovers tick.
func GetSqrtPriceAtTick(tick int) (*ui.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, ErrInvalidTick
	}
	absTick := tick
	if tick < 0 {
		absTick = -tick
	}

	// Binary exponentiation in the reciprocal Q128.128 domain:
	// 1/1.0001^absTick = prod over set bits k of 1/1.0001^(2^k), truncating
	// after each multiplication.
	ratio := new(ui.Int)
	if absTick&1 != 0 {
		ratio.Set(sqrtRatioOdd)
	} else {
		ratio.Set(sqrtRatioOne)
	}
	for k := 0; absTick>>(k+1) != 0; k++ {
		if absTick&(1<<(k+1)) != 0 {
			ratio.Rsh(ratio.Mul(ratio, sqrtRatios[k]), 128)
		}
	}

	// Flip from the reciprocal domain to the direct domain.
	if tick > 0 {
		ratio.Div(cons.MaxUint256, ratio)
	}

	// Q128.128 -> Q64.96, rounding up. ratio is below 2^192 for every
	// in-range tick (the reciprocal-domain product is at most 2^128, and in
	// the direct domain the divisor always exceeds 2^64), so the add cannot
	// wrap.
	return ratio.Rsh(ratio.Add(ratio, maxUint32), 32), nil
}

// GetTickAtSqrtPrice returns the greatest tick whose sqrt price is less than
// or equal to sqrtPriceX96.
func GetTickAtSqrtPrice(sqrtPriceX96 *ui.Int) (int, error) {
	if sqrtPriceX96.Lt(MinSqrtPrice) || !sqrtPriceX96.Lt(MaxSqrtPrice) {
		return 0, ErrInvalidSqrtPrice
	}

	price := new(ui.Int).Lsh(sqrtPriceX96, 32)
	msb := uint(price.BitLen() - 1)

	// Normalize so the top set bit lands at position 127.
	r := new(ui.Int)
	if msb >= 128 {
		r.Rsh(price, msb-127)
	} else {
		r.Lsh(price, 127-msb)
	}

	// 8.64 fixed-point log2 estimate; the integer part is msb - 128 of the
	// X128 price. Negative values live in two's complement.
	log2 := new(ui.Int).Lsh(new(ui.Int).Sub(ui.NewInt(uint64(msb)), ui.NewInt(128)), 64)

	// Refine one fractional bit per squaring. The iteration count pairs with
	// the error bound constants below and must stay at 14.
	for i := 0; i < 14; i++ {
		r.Rsh(r.Mul(r, r), 127)
		f := new(ui.Int).Rsh(r, 128)
		log2.Or(log2, new(ui.Int).Lsh(f, uint(63-i)))
		r.Rsh(r, uint(f.Uint64()))
	}

	// Convert to log base sqrt(1.0001), Q128.128. The wrapping multiply
	// yields the correct two's-complement signed product.
	logSqrt10001 := log2.Mul(log2, logBase)

	tickLow := signedShift128(new(ui.Int).Sub(logSqrt10001, tickLowErr))
	tickHigh := signedShift128(new(ui.Int).Add(logSqrt10001, tickHighErr))

	if tickLow == tickHigh {
		return tickLow, nil
	}
	priceAtHigh, err := GetSqrtPriceAtTick(tickHigh)
	if err != nil {
		return 0, err
	}
	if !sqrtPriceX96.Lt(priceAtHigh) {
		return tickHigh, nil
	}
	return tickLow, nil
}

// MaxUsableTick returns the greatest tick that is a multiple of tickSpacing
// and not above MaxTick. tickSpacing must already be validated to lie in
// [MinTickSpacing, MaxTickSpacing].
func MaxUsableTick(tickSpacing int) int {
	return (MaxTick / tickSpacing) * tickSpacing
}

// MinUsableTick returns the least tick that is a multiple of tickSpacing and
// not below MinTick.
func MinUsableTick(tickSpacing int) int {
	return (MinTick / tickSpacing) * tickSpacing
}

// signedShift128 interprets x as a signed 256-bit value, shifts right 128
// with sign extension and truncates to the tick width.
func signedShift128(x *ui.Int) int {
	shifted := new(ui.Int).SRsh(x, 128)
	if shifted.Sign() < 0 {
		return -int(new(ui.Int).Neg(shifted).Uint64())
	}
	return int(shifted.Uint64())
}
