package faucet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"

	"github.com/faucetbot/faucet-workers/utils"
)

// erc20TransferABI covers the single method the faucet calls on a token
// contract.
const erc20TransferABI = `[{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}]`

// ERC20Backend disburses a contract token by submitting a
// transfer(address,uint256) call signed by the faucet's funding key.
type ERC20Backend struct {
	client   EVMClient
	signer   types.Signer
	privKey  *ecdsa.PrivateKey
	from     common.Address
	contract string
	decimals uint32
	abi      abi.ABI
}

func NewERC20Backend(client EVMClient, chainID *big.Int, privKey *ecdsa.PrivateKey, contract string, decimals uint32) (*ERC20Backend, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20TransferABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 transfer abi: %w", err)
	}
	return &ERC20Backend{
		client:   client,
		signer:   types.LatestSignerForChainID(chainID),
		privKey:  privKey,
		from:     crypto.PubkeyToAddress(privKey.PublicKey),
		contract: contract,
		decimals: decimals,
		abi:      parsed,
	}, nil
}

func (b *ERC20Backend) Submit(ctx context.Context, destination string, amount decimal.Decimal) (string, error) {
	if !common.IsHexAddress(b.contract) {
		return "", newError(ErrInvalidAddress, "malformed token contract %q", b.contract)
	}
	if !common.IsHexAddress(destination) {
		return "", newError(ErrInvalidAddress, "malformed destination address %q", destination)
	}
	to := common.HexToAddress(destination)

	data, err := b.abi.Pack("transfer", to, utils.ToBaseUnits(amount, b.decimals))
	if err != nil {
		return "", newError(ErrEncoding, "encode transfer call: %v", err)
	}

	contract := common.HexToAddress(b.contract)
	return submitEVMTransaction(ctx, b.client, b.signer, b.privKey, b.from, contract, big.NewInt(0), data)
}
