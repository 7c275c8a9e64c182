package faucet

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/faucetbot/faucet-workers/entities"
	"github.com/faucetbot/faucet-workers/utils"
)

// BalanceReader is the single RPC the alerter needs from an EVM provider.
// Satisfied by *ethclient.Client.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// EVMWallet is one faucet funding wallet watched by the alerter.
type EVMWallet struct {
	Network   Network
	Client    BalanceReader
	Address   common.Address
	Threshold decimal.Decimal
}

// LightningWallet is one LND node wallet watched by the alerter.
type LightningWallet struct {
	Name      string
	Node      *utils.LndClient
	Threshold decimal.Decimal
}

// BalanceAlerter periodically polls every funding wallet the faucet
// disburses from and raises a Slack alert when one drops below its
// threshold, so the faucet is topped up before users see
// "Faucet out of funds!".
type BalanceAlerter struct {
	WorkerAbs
	evmWallets       []EVMWallet
	lightningWallets []LightningWallet
}

func (b *BalanceAlerter) Init(id int, name string, freq int, evmWallets []EVMWallet, lightningWallets []LightningWallet) error {
	b.WorkerAbs.Init(id, name, freq)
	b.evmWallets = evmWallets
	b.lightningWallets = lightningWallets
	return nil
}

func (b *BalanceAlerter) Execute() {
	b.Logger.Info("BalanceAlerter worker is executing...")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, wallet := range b.evmWallets {
		balance, err := wallet.Client.BalanceAt(ctx, wallet.Address, nil)
		if err != nil {
			b.ExportErrorLog(fmt.Sprintf("Could not get %s balance of %s - with err: %v", wallet.Network, wallet.Address.Hex(), err))
			continue
		}
		b.check(string(wallet.Network), utils.ToDecimal(balance, nativeDecimals), wallet.Threshold)
	}

	for _, wallet := range b.lightningWallets {
		body, err := wallet.Node.Get(ctx, "/v1/balance/blockchain")
		if err != nil {
			b.ExportErrorLog(fmt.Sprintf("Could not get %s wallet balance - with err: %v", wallet.Name, err))
			continue
		}
		var response entities.WalletBalanceResponse
		if err := json.Unmarshal(body, &response); err != nil {
			b.ExportErrorLog(fmt.Sprintf("Could not parse %s wallet balance %q - with err: %v", wallet.Name, body, err))
			continue
		}
		b.check(wallet.Name, utils.ToDecimal(big.NewInt(response.ConfirmedBalance), satoshiDecimals), wallet.Threshold)
	}
}

func (b *BalanceAlerter) check(wallet string, balance, threshold decimal.Decimal) {
	if balance.Cmp(threshold) < 0 {
		b.ExportErrorLog(fmt.Sprintf("Faucet wallet %s is low: %s left (alert threshold %s)", wallet, balance, threshold))
		return
	}
	b.Logger.Infof("Faucet wallet %s holds %s", wallet, balance)
}
