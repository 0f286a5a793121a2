// Package safecast contains checked narrowing conversions between the fixed
// integer widths used by the price math.
package safecast

import (
	"errors"

	cons "github.com/avelar-labs/clmm-math/lib/constants"
	ui "github.com/holiman/uint256"
)

var ErrCastOverflow = errors.New("safecast: value does not fit target width")

// ToUint160 returns x unchanged if it fits 160 bits, ErrCastOverflow
// otherwise.
func ToUint160(x *ui.Int) (*ui.Int, error) {
	if x.Gt(cons.MaxUint160) {
		return nil, ErrCastOverflow
	}
	return x, nil
}
