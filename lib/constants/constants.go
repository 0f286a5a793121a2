package constants

import (
	ui "github.com/holiman/uint256"
)

// Resolution is the number of fractional bits in the Q64.96 sqrt price
// representation.
const Resolution = 96

var (
	Zero = new(ui.Int)
	One  = new(ui.Int).SetOne()

	MaxUint256 = ui.MustFromHex("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	MaxUint160 = ui.MustFromHex("0xffffffffffffffffffffffffffffffffffffffff")

	Q32  = new(ui.Int).Lsh(One, 32)
	Q96  = new(ui.Int).Lsh(One, Resolution)
	Q128 = new(ui.Int).Lsh(One, 128)
	Q192 = new(ui.Int).Lsh(One, 192)
)
