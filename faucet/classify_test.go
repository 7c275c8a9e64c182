package faucet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		detail   string
		expected ErrorKind
	}{
		{"checksum failed: address tb1qx is not valid for this network", ErrInvalidAddress},
		{"decoded address is of unknown format", ErrInvalidAddress},
		{"insufficient funds in wallet", ErrInsufficientFunds},
		{"insufficient funds available to construct transaction", ErrInsufficientFunds},
		{"insufficient funds for gas * price + value: address 0x9ed0c9dd4d68b1c1e9164ec7e1ba59f1c5f63acd have 0 want 50000000000000000", ErrInsufficientFunds},
		{"replacement transaction underpriced", ErrPendingTx},
		{"known transaction: replacement rejected", ErrPendingTx},
		{"Post \"http://127.0.0.1:8545\": context deadline exceeded", ErrProviderUnavailable},
		{"dial tcp 127.0.0.1:8080: connect: connection refused", ErrProviderUnavailable},
		{"execution reverted", ErrGeneric},
		{"server is still in the process of starting", ErrGeneric},
		{"", ErrGeneric},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Classify(tc.detail), "detail %q", tc.detail)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, ErrInsufficientFunds, Classify("INSUFFICIENT funds for gas * price + value"))
}
