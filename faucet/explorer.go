package faucet

import "fmt"

type explorerKey struct {
	network Network
	coin    string
}

// explorerTemplates maps a settlement rail (and, on Lightning, the coin)
// to a block-explorer URL template. EVM networks share one explorer per
// chain regardless of coin.
var explorerTemplates = map[explorerKey]string{
	{NetworkLightning, "BTC"}: "https://www.blockchain.com/btc-testnet/tx/%s",
	{NetworkLightning, "LTC"}: "https://blockexplorer.one/litecoin/testnet/tx/%s",
	{network: NetworkEthereum}: "https://rinkeby.etherscan.io/tx/%s",
	{network: NetworkArbitrum}: "https://testnet.arbiscan.io/tx/%s",
}

// ExplorerURL renders the public explorer link for a submitted
// transaction. The bool reports whether the network/coin pair is mapped;
// configuration validation refuses coins that are not, so a false here is
// unreachable for a validated config.
func ExplorerURL(network Network, coin string, txid string) (string, bool) {
	template, ok := explorerTemplates[explorerKey{network: network, coin: coin}]
	if !ok {
		template, ok = explorerTemplates[explorerKey{network: network}]
	}
	if !ok {
		return "", false
	}
	return fmt.Sprintf(template, txid), true
}
