package faucet

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"

	"github.com/faucetbot/faucet-workers/utils"
)

const nativeDecimals = 18

// EVMClient is the subset of the Ethereum RPC the backends use. It is
// satisfied by *ethclient.Client.
type EVMClient interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// EVMBackend disburses a chain's native asset with a plain value transfer
// signed by the faucet's funding key.
type EVMBackend struct {
	client  EVMClient
	signer  types.Signer
	privKey *ecdsa.PrivateKey
	from    common.Address
}

func NewEVMBackend(client EVMClient, chainID *big.Int, privKey *ecdsa.PrivateKey) *EVMBackend {
	return &EVMBackend{
		client:  client,
		signer:  types.LatestSignerForChainID(chainID),
		privKey: privKey,
		from:    crypto.PubkeyToAddress(privKey.PublicKey),
	}
}

func (b *EVMBackend) Submit(ctx context.Context, destination string, amount decimal.Decimal) (string, error) {
	if !common.IsHexAddress(destination) {
		return "", newError(ErrInvalidAddress, "malformed destination address %q", destination)
	}
	to := common.HexToAddress(destination)
	value := utils.ToBaseUnits(amount, nativeDecimals)

	return submitEVMTransaction(ctx, b.client, b.signer, b.privKey, b.from, to, value, nil)
}

// submitEVMTransaction estimates gas for, signs and broadcasts one legacy
// transaction. Shared by the native and the ERC-20 backend.
func submitEVMTransaction(
	ctx context.Context,
	client EVMClient,
	signer types.Signer,
	privKey *ecdsa.PrivateKey,
	from common.Address,
	to common.Address,
	value *big.Int,
	data []byte,
) (string, error) {
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		if Classify(err.Error()) == ErrInsufficientFunds {
			return "", newError(ErrInsufficientFunds, "gas estimation: %v", err)
		}
		return "", newError(ErrGeneric, "couldn't estimate gas: %v", err)
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", newError(ErrProviderUnavailable, "fetch pending nonce: %v", err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return "", newError(ErrProviderUnavailable, "fetch gas price: %v", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, signer, privKey)
	if err != nil {
		return "", newError(ErrGeneric, "sign transaction: %v", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		if Classify(err.Error()) == ErrPendingTx {
			return "", newError(ErrPendingTx, "broadcast: %v", err)
		}
		return "", newError(ErrGeneric, "broadcast: %v", err)
	}
	return signed.Hash().Hex(), nil
}
