package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cons "github.com/avelar-labs/clmm-math/lib/constants"
	sqrtmath "github.com/avelar-labs/clmm-math/lib/sqrtprice_math"
	"github.com/avelar-labs/clmm-math/lib/swapmath"
	"github.com/avelar-labs/clmm-math/lib/tickmath"
	ui "github.com/holiman/uint256"
)

func main() {
	root := &cobra.Command{
		Use:          "clmmcalc",
		Short:        "Concentrated-liquidity fixed-point math calculator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	tickCmd := &cobra.Command{
		Use:   "tick <tick>",
		Short: "Convert a tick to its Q64.96 sqrt price",
		Args:  cobra.ExactArgs(1),
		RunE:  runTick,
	}
	root.AddCommand(tickCmd)

	priceCmd := &cobra.Command{
		Use:   "price <sqrtPriceX96>",
		Short: "Convert a Q64.96 sqrt price to the greatest tick at or below it",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrice,
	}
	root.AddCommand(priceCmd)

	amountsCmd := &cobra.Command{
		Use:   "amounts",
		Short: "Token amounts spanned by a tick range at a liquidity level",
		RunE:  runAmounts,
	}
	amountsCmd.Flags().Int("lower", 0, "lower tick of the range")
	amountsCmd.Flags().Int("upper", 0, "upper tick of the range")
	amountsCmd.Flags().String("liquidity", "", "liquidity amount")
	root.AddCommand(amountsCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a single swap step bounded by a target price",
		RunE:  runQuote,
	}
	quoteCmd.Flags().String("price", "", "current sqrt price (X96)")
	quoteCmd.Flags().String("target", "", "target sqrt price (X96)")
	quoteCmd.Flags().String("liquidity", "", "pool liquidity")
	quoteCmd.Flags().String("amount", "", "amount remaining (negative for exact output)")
	quoteCmd.Flags().Int("fee", 3000, "fee in pips (hundredths of a bip)")
	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func parseUint256(name, s string) (*ui.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("--%s is required", name)
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("--%s: invalid integer %q", name, s)
	}
	v, overflow := ui.FromBig(new(big.Int).Abs(b))
	if overflow {
		return nil, fmt.Errorf("--%s: value exceeds 256 bits", name)
	}
	if b.Sign() < 0 {
		v.Neg(v)
	}
	return v, nil
}

// humanPrice renders a sqrt price as the currency1/currency0 price it
// encodes, (x96 / 2^96)^2.
func humanPrice(sqrtPriceX96 *ui.Int) string {
	f := new(big.Float).SetInt(sqrtPriceX96.ToBig())
	f.Quo(f, new(big.Float).SetInt(cons.Q96.ToBig()))
	f.Mul(f, f)
	return f.Text('g', 12)
}

func runTick(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tick, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid tick %q", args[0])
	}
	sqrtPrice, err := tickmath.GetSqrtPriceAtTick(tick)
	if err != nil {
		logger.Error("conversion failed", zap.Int("tick", tick), zap.Error(err))
		return err
	}
	logger.Debug("converted tick", zap.Int("tick", tick), zap.String("sqrtPriceX96", sqrtPrice.Dec()))
	fmt.Printf("sqrtPriceX96: %s\nprice:        %s\n", sqrtPrice.Dec(), humanPrice(sqrtPrice))
	return nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sqrtPrice, err := parseUint256("price", args[0])
	if err != nil {
		return err
	}
	tick, err := tickmath.GetTickAtSqrtPrice(sqrtPrice)
	if err != nil {
		logger.Error("conversion failed", zap.String("sqrtPriceX96", sqrtPrice.Dec()), zap.Error(err))
		return err
	}
	fmt.Printf("tick: %d\n", tick)
	return nil
}

func runAmounts(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	lower, _ := cmd.Flags().GetInt("lower")
	upper, _ := cmd.Flags().GetInt("upper")
	if lower >= upper {
		return errors.New("--lower must be below --upper")
	}
	liquidityStr, _ := cmd.Flags().GetString("liquidity")
	liquidity, err := parseUint256("liquidity", liquidityStr)
	if err != nil {
		return err
	}

	sqrtPriceLower, err := tickmath.GetSqrtPriceAtTick(lower)
	if err != nil {
		return err
	}
	sqrtPriceUpper, err := tickmath.GetSqrtPriceAtTick(upper)
	if err != nil {
		return err
	}
	amount0, err := sqrtmath.GetAmount0Delta(sqrtPriceLower, sqrtPriceUpper, liquidity, true)
	if err != nil {
		return err
	}
	amount1, err := sqrtmath.GetAmount1Delta(sqrtPriceLower, sqrtPriceUpper, liquidity, true)
	if err != nil {
		return err
	}
	logger.Debug("range amounts",
		zap.Int("lower", lower), zap.Int("upper", upper),
		zap.String("liquidity", liquidity.Dec()))
	fmt.Printf("amount0: %s\namount1: %s\n", amount0.Dec(), amount1.Dec())
	return nil
}

func runQuote(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	priceStr, _ := cmd.Flags().GetString("price")
	targetStr, _ := cmd.Flags().GetString("target")
	liquidityStr, _ := cmd.Flags().GetString("liquidity")
	amountStr, _ := cmd.Flags().GetString("amount")
	fee, _ := cmd.Flags().GetInt("fee")

	price, err := parseUint256("price", priceStr)
	if err != nil {
		return err
	}
	target, err := parseUint256("target", targetStr)
	if err != nil {
		return err
	}
	liquidity, err := parseUint256("liquidity", liquidityStr)
	if err != nil {
		return err
	}
	amount, err := parseUint256("amount", amountStr)
	if err != nil {
		return err
	}
	if fee < 0 || fee >= swapmath.MaxFeePips {
		return fmt.Errorf("--fee must be in [0, %d)", swapmath.MaxFeePips)
	}

	next, amountIn, amountOut, feeAmount, err := swapmath.ComputeSwapStep(price, target, liquidity, amount, fee)
	if err != nil {
		logger.Error("swap step failed", zap.Error(err))
		return err
	}
	fmt.Printf("sqrtPriceNextX96: %s\namountIn:         %s\namountOut:        %s\nfeeAmount:        %s\n",
		next.Dec(), amountIn.Dec(), amountOut.Dec(), feeAmount.Dec())
	return nil
}
