package faucet

import (
	"context"
	"encoding/json"

	"github.com/btcsuite/btcutil"
	"github.com/shopspring/decimal"

	"github.com/faucetbot/faucet-workers/entities"
	"github.com/faucetbot/faucet-workers/utils"
)

const satoshiDecimals = 8

// LightningBackend sends coins on-chain through an LND node's REST API,
// authenticated with the node's macaroon.
type LightningBackend struct {
	node *utils.LndClient
}

func NewLightningBackend(node *utils.LndClient) *LightningBackend {
	return &LightningBackend{node: node}
}

func (b *LightningBackend) Submit(ctx context.Context, destination string, amount decimal.Decimal) (string, error) {
	sats := btcutil.Amount(utils.ToBaseUnits(amount, satoshiDecimals).Int64())

	request := entities.SendCoinsRequest{
		Addr:   destination,
		Amount: int64(sats),
	}

	body, err := b.node.Post(ctx, "/v1/transactions", request)
	if err != nil {
		return "", newError(ErrProviderUnavailable, "lnd send of %s failed: %v", sats.Format(btcutil.AmountSatoshi), err)
	}

	// lnd reports failures inside the body; anything that is not the
	// success shape gets classified from the raw text.
	var response entities.SendCoinsResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Txid == "" {
		return "", newError(Classify(string(body)), "unexpected lnd response to %s send: %s", sats.Format(btcutil.AmountSatoshi), body)
	}
	return response.Txid, nil
}
