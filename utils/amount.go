package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a decimal coin amount to its integer base-unit
// representation at the given number of decimal places (wei at 18,
// satoshi at 8). Amounts below the smallest representable unit yield
// zero instead of a silently rounded nonzero value.
func ToBaseUnits(amount decimal.Decimal, decimals uint32) *big.Int {
	smallest := decimal.New(1, -int32(decimals))
	if amount.Cmp(smallest) < 0 {
		return big.NewInt(0)
	}
	return amount.Shift(int32(decimals)).Round(0).BigInt()
}

// ToDecimal converts integer base units back to a decimal amount. The sign
// is dropped: upstream representations may carry one, faucet amounts never
// do.
func ToDecimal(baseUnits *big.Int, decimals uint32) decimal.Decimal {
	return decimal.NewFromBigInt(baseUnits, -int32(decimals)).Abs()
}
