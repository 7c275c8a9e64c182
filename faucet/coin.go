package faucet

import "github.com/shopspring/decimal"

// Network identifies the settlement rail a coin is disbursed on.
type Network string

const (
	NetworkLightning Network = "lightning"
	NetworkEthereum  Network = "ethereum"
	NetworkArbitrum  Network = "arbitrum"
)

// AssetKind distinguishes a chain's native asset from a contract token.
// Backend selection is driven by this field, never by the coin's display
// code.
type AssetKind string

const (
	AssetNative AssetKind = "native"
	AssetToken  AssetKind = "token"
)

// Coin is the per-coin faucet configuration, resolved once at startup and
// immutable afterwards.
type Coin struct {
	Name     string
	Amount   decimal.Decimal
	Network  Network
	Asset    AssetKind
	Contract string
	Decimals uint32
	// Node names the lightning node this coin is disbursed from; empty
	// for EVM coins, whose endpoint is keyed by Network instead.
	Node string
}
