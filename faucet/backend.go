package faucet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Backend submits a single disbursement on one settlement rail and returns
// the transaction id. Failures come back as *Error, already classified.
type Backend interface {
	Submit(ctx context.Context, destination string, amount decimal.Decimal) (string, error)
}
