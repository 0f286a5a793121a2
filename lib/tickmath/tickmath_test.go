package tickmath

import (
	"math"
	"math/big"
	"testing"

	ui "github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func mustUint(t *testing.T, s string) *ui.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad integer literal %q", s)
	v, overflow := ui.FromBig(b)
	require.False(t, overflow)
	return v
}

func TestGetSqrtPriceAtTickBoundaries(t *testing.T) {
	tests := []struct {
		tick int
		want string
	}{
		{0, "79228162514264337593543950336"}, // 2^96, price ratio exactly 1
		{MinTick, "4295128739"},
		{MaxTick, "1461446703485210103287273052203988822378723970342"},
		{MinTick + 1, "4295343490"},
		{MaxTick - 1, "1461373636630004318706518188784493106690254656249"},
	}
	for _, tt := range tests {
		got, err := GetSqrtPriceAtTick(tt.tick)
		require.NoError(t, err, "tick %d", tt.tick)
		require.Equal(t, tt.want, got.Dec(), "tick %d", tt.tick)
	}
}

func TestGetSqrtPriceAtTickInvalid(t *testing.T) {
	for _, tick := range []int{MinTick - 1, MaxTick + 1, math.MinInt32, math.MaxInt32} {
		_, err := GetSqrtPriceAtTick(tick)
		require.ErrorIs(t, err, ErrInvalidTick, "tick %d", tick)
	}
}

func TestGetSqrtPriceAtTickApproximatesExponential(t *testing.T) {
	// Independent sanity check against floating point: the fixed-point result
	// must agree with sqrt(1.0001^tick) to well under a hundredth of a bip.
	for _, tick := range []int{-887272, -500000, -100000, -50, -1, 1, 50, 100000, 500000, 887272} {
		got, err := GetSqrtPriceAtTick(tick)
		require.NoError(t, err)
		gotF, _ := new(big.Float).SetInt(got.ToBig()).Float64()
		wantF := math.Pow(1.0001, float64(tick)/2) * math.Pow(2, 96)
		require.InEpsilon(t, wantF, gotF, 1e-6, "tick %d", tick)
	}
}

func TestGetTickAtSqrtPriceBounds(t *testing.T) {
	tick, err := GetTickAtSqrtPrice(MinSqrtPrice)
	require.NoError(t, err)
	require.Equal(t, MinTick, tick)

	maxMinusOne := new(ui.Int).Sub(MaxSqrtPrice, ui.NewInt(1))
	tick, err = GetTickAtSqrtPrice(maxMinusOne)
	require.NoError(t, err)
	require.Equal(t, MaxTick-1, tick)

	belowMin := new(ui.Int).Sub(MinSqrtPrice, ui.NewInt(1))
	_, err = GetTickAtSqrtPrice(belowMin)
	require.ErrorIs(t, err, ErrInvalidSqrtPrice)

	_, err = GetTickAtSqrtPrice(MaxSqrtPrice)
	require.ErrorIs(t, err, ErrInvalidSqrtPrice)

	_, err = GetTickAtSqrtPrice(new(ui.Int))
	require.ErrorIs(t, err, ErrInvalidSqrtPrice)
}

func TestGetTickAtSqrtPriceKnownValues(t *testing.T) {
	tick, err := GetTickAtSqrtPrice(mustUint(t, "79228162514264337593543950336")) // 2^96
	require.NoError(t, err)
	require.Equal(t, 0, tick)
}

func roundTripTicks() []int {
	ticks := []int{MinTick, MinTick + 1, -887271, -4000, -100, -1, 0, 1, 100, 4000, MaxTick - 1, MaxTick}
	for tick := MinTick; tick <= MaxTick; tick += 2711 {
		ticks = append(ticks, tick)
	}
	for tick := -1000; tick <= 1000; tick++ {
		ticks = append(ticks, tick)
	}
	return ticks
}

func TestRoundTrip(t *testing.T) {
	for _, tick := range roundTripTicks() {
		sqrtPrice, err := GetSqrtPriceAtTick(tick)
		require.NoError(t, err)
		if tick == MaxTick {
			// The price at MaxTick is the exclusive upper bound of the
			// inverse function's domain.
			_, err = GetTickAtSqrtPrice(sqrtPrice)
			require.ErrorIs(t, err, ErrInvalidSqrtPrice)
			continue
		}
		got, err := GetTickAtSqrtPrice(sqrtPrice)
		require.NoError(t, err)
		require.Equal(t, tick, got, "round trip of tick %d", tick)
	}
}

func TestMonotonicity(t *testing.T) {
	var prev *ui.Int
	for tick := MinTick; tick <= MaxTick; tick += 997 {
		sqrtPrice, err := GetSqrtPriceAtTick(tick)
		require.NoError(t, err)
		if prev != nil {
			require.True(t, prev.Lt(sqrtPrice), "price must strictly increase at tick %d", tick)
		}
		prev = sqrtPrice
	}
}

func TestGetTickAtSqrtPriceFloorSemantics(t *testing.T) {
	// Any price strictly between two tick prices maps to the lower tick.
	for _, tick := range []int{-887271, -20000, -1, 0, 1, 54321, 887270} {
		at, err := GetSqrtPriceAtTick(tick)
		require.NoError(t, err)
		next, err := GetSqrtPriceAtTick(tick + 1)
		require.NoError(t, err)

		got, err := GetTickAtSqrtPrice(new(ui.Int).Add(at, ui.NewInt(1)))
		require.NoError(t, err)
		require.Equal(t, tick, got, "just above tick %d", tick)

		got, err = GetTickAtSqrtPrice(new(ui.Int).Sub(next, ui.NewInt(1)))
		require.NoError(t, err)
		require.Equal(t, tick, got, "just below tick %d", tick+1)
	}
}

func TestUsableTick(t *testing.T) {
	tests := []struct {
		spacing int
		wantMax int
		wantMin int
	}{
		{1, 887272, -887272},
		{10, 887270, -887270},
		{60, 887220, -887220},
		{200, 887200, -887200},
		{MaxTickSpacing, 884709, -884709},
	}
	for _, tt := range tests {
		require.Equal(t, tt.wantMax, MaxUsableTick(tt.spacing), "spacing %d", tt.spacing)
		require.Equal(t, tt.wantMin, MinUsableTick(tt.spacing), "spacing %d", tt.spacing)
	}
}
