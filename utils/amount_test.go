package utils

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	testCases := []struct {
		amount   string
		decimals uint32
		expected string
	}{
		{"0.0005", 8, "50000"},
		{"1", 8, "100000000"},
		{"1.5", 18, "1500000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{"10", 6, "10000000"},
	}
	for _, tc := range testCases {
		amount, err := decimal.NewFromString(tc.amount)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, ToBaseUnits(amount, tc.decimals).String(), "amount %s at %d decimals", tc.amount, tc.decimals)
	}
}

func TestToBaseUnitsBelowSmallestUnit(t *testing.T) {
	testCases := []struct {
		amount   string
		decimals uint32
	}{
		{"0.000000001", 8},
		{"0.0000000000000000001", 18},
		{"0", 8},
	}
	for _, tc := range testCases {
		amount, err := decimal.NewFromString(tc.amount)
		require.NoError(t, err)
		assert.Zero(t, ToBaseUnits(amount, tc.decimals).Sign(), "amount %s at %d decimals", tc.amount, tc.decimals)
	}
}

func TestToDecimalDropsSign(t *testing.T) {
	amount := ToDecimal(big.NewInt(-50000), 8)
	assert.Equal(t, "0.0005", amount.String())
}

func TestRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.0005", "0.25", "1", "123.456789", "0.00000001"} {
		amount, err := decimal.NewFromString(raw)
		require.NoError(t, err)
		assert.True(t, amount.Equal(ToDecimal(ToBaseUnits(amount, 8), 8)), "round trip %s at 8 decimals", raw)
	}
	for _, raw := range []string{"1.5", "0.000000000000000001", "42"} {
		amount, err := decimal.NewFromString(raw)
		require.NoError(t, err)
		assert.True(t, amount.Equal(ToDecimal(ToBaseUnits(amount, 18), 18)), "round trip %s at 18 decimals", raw)
	}
}
