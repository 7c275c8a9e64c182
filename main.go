package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/faucetbot/faucet-workers/chat"
	"github.com/faucetbot/faucet-workers/config"
	"github.com/faucetbot/faucet-workers/faucet"
	"github.com/faucetbot/faucet-workers/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		panic("Error loading .env file")
	}

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config - with err: %v", err))
	}

	privKeyHex := strings.TrimPrefix(os.Getenv("EVM_PRIVATE_KEY"), "0x")
	privKey, err := crypto.HexToECDSA(privKeyHex)
	if err != nil {
		panic(fmt.Sprintf("Could not parse EVM_PRIVATE_KEY - with err: %v", err))
	}
	fundingAddress := crypto.PubkeyToAddress(privKey.PublicKey)

	// macaroon files are read once at startup and attached hex-encoded to
	// every node request afterwards
	lndClients := map[string]*utils.LndClient{}
	for name, node := range cfg.Lightning {
		macaroonBytes, err := os.ReadFile(node.MacaroonPath)
		if err != nil {
			panic(fmt.Sprintf("%s macaroon file not found - with err: %v", name, err))
		}
		lndClients[name] = utils.NewLndClient(node.URL, hex.EncodeToString(macaroonBytes))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	evmClients := map[faucet.Network]*ethclient.Client{}
	chainIDs := map[faucet.Network]*big.Int{}
	for networkName, endpoint := range cfg.Providers {
		client, err := ethclient.DialContext(ctx, endpoint)
		if err != nil {
			panic(fmt.Sprintf("Could not connect to %s provider - with err: %v", networkName, err))
		}
		chainID, err := client.ChainID(ctx)
		if err != nil {
			panic(fmt.Sprintf("Could not get %s chain id - with err: %v", networkName, err))
		}
		network := faucet.Network(networkName)
		evmClients[network] = client
		chainIDs[network] = chainID
	}

	backends := map[string]faucet.Backend{}
	for name, coin := range cfg.CoinSet() {
		switch {
		case coin.Network == faucet.NetworkLightning:
			backends[name] = faucet.NewLightningBackend(lndClients[coin.Node])
		case coin.Asset == faucet.AssetNative:
			backends[name] = faucet.NewEVMBackend(evmClients[coin.Network], chainIDs[coin.Network], privKey)
		default:
			backend, err := faucet.NewERC20Backend(evmClients[coin.Network], chainIDs[coin.Network], privKey, coin.Contract, coin.Decimals)
			if err != nil {
				panic(fmt.Sprintf("Could not build %s backend - with err: %v", name, err))
			}
			backends[name] = backend
		}
	}

	history, err := faucet.OpenHistoryStore(cfg.HistoryDir)
	if err != nil {
		panic(fmt.Sprintf("Could not open history db - with err: %v", err))
	}
	defer history.Close()

	dispatcher := faucet.NewDispatcher(faucet.DispatcherConfig{
		Coins:    cfg.CoinSet(),
		Backends: backends,
		History:  history,
		Cooldown: cfg.Cooldown(),
		Timeout:  cfg.SubmitTimeout(),
		Logger:   logrus.WithField("component", "dispatcher"),
	})

	adapter, err := chat.NewAdapter(os.Getenv("DISCORD_TOKEN"), dispatcher, logrus.WithField("component", "chat"))
	if err != nil {
		panic(fmt.Sprintf("Could not create chat adapter - with err: %v", err))
	}

	evmWallets := []faucet.EVMWallet{}
	for network, client := range evmClients {
		evmWallets = append(evmWallets, faucet.EVMWallet{
			Network:   network,
			Client:    client,
			Address:   fundingAddress,
			Threshold: cfg.Alerts.GetEVMThreshold(),
		})
	}
	lightningWallets := []faucet.LightningWallet{}
	for name, node := range lndClients {
		lightningWallets = append(lightningWallets, faucet.LightningWallet{
			Name:      name,
			Node:      node,
			Threshold: cfg.Alerts.GetLightningThreshold(),
		})
	}

	balanceAlerter := &faucet.BalanceAlerter{}
	err = balanceAlerter.Init(1, "Balance Alerter", cfg.Alerts.FrequencySeconds, evmWallets, lightningWallets)
	if err != nil {
		panic("Can't init Balance Alerter")
	}

	runtime.GOMAXPROCS(runtime.NumCPU())
	s := NewServer(adapter, []faucet.Worker{balanceAlerter})
	if err := s.Run(); err != nil {
		panic(fmt.Sprintf("Could not start server - with err: %v", err))
	}
	for range s.workers {
		<-s.finish
	}
	s.Stop()
	fmt.Println("Server stopped gracefully!")
}
