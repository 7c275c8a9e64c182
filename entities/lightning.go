package entities

// SendCoinsRequest is the body of POST /v1/transactions on the LND REST
// API, used to send coins on-chain from the node's internal wallet.
type SendCoinsRequest struct {
	// The address to send coins to.
	Addr string `json:"addr"`
	// The amount in satoshis to send.
	Amount int64 `json:"amount,string"`
	// The target number of blocks this transaction should be confirmed by.
	TargetConf int32 `json:"target_conf"`
	// A manual fee rate set in sat/vbyte that should be used when crafting
	// the transaction.
	SatPerVbyte uint64 `json:"sat_per_vbyte"`
	// If set, the amount field is ignored and all the coins under control
	// of the internal wallet are swept to the specified address.
	SendAll bool `json:"send_all"`
	// An optional label for the transaction, limited to 500 characters.
	Label string `json:"label"`
	// The minimum number of confirmations each one of the outputs used for
	// the transaction must satisfy.
	MinConfs int32 `json:"min_confs"`
	// Whether unconfirmed outputs should be used as inputs for the
	// transaction.
	SpendUnconfirmed bool `json:"spend_unconfirmed"`
}

// SendCoinsResponse is the success shape of POST /v1/transactions.
type SendCoinsResponse struct {
	Txid string `json:"txid"`
}

// WalletBalanceResponse is the body of GET /v1/balance/blockchain.
type WalletBalanceResponse struct {
	TotalBalance       int64 `json:"total_balance,string"`
	ConfirmedBalance   int64 `json:"confirmed_balance,string"`
	UnconfirmedBalance int64 `json:"unconfirmed_balance,string"`
}
