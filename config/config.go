package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/faucetbot/faucet-workers/faucet"
)

// LightningNode is one LND node the faucet can disburse from.
type LightningNode struct {
	URL          string `toml:"url"`
	MacaroonPath string `toml:"macaroon_path"`
}

// CoinConfig is the raw per-coin table from config.toml. Amounts are kept
// as strings so a value like "0.0005" survives decoding exactly.
type CoinConfig struct {
	Amount   string `toml:"amount"`
	Network  string `toml:"network"`
	Asset    string `toml:"asset"`
	Contract string `toml:"contract"`
	Decimals uint32 `toml:"decimals"`
	Node     string `toml:"node"`
}

// Alerts configures the balance alerter worker.
type Alerts struct {
	FrequencySeconds   int    `toml:"frequency_seconds"`
	EVMThreshold       string `toml:"evm_threshold"`
	LightningThreshold string `toml:"lightning_threshold"`

	evmThreshold       decimal.Decimal
	lightningThreshold decimal.Decimal
}

// Config mirrors config.toml. It is loaded once at startup and read-only
// afterwards; secrets (bot token, EVM key, webhook URLs) live in the
// environment instead.
type Config struct {
	CooldownHours         uint   `toml:"cooldown_hours"`
	RequestTimeoutSeconds uint   `toml:"request_timeout_seconds"`
	HistoryDir            string `toml:"history_dir"`

	Alerts    Alerts                   `toml:"alerts"`
	Providers map[string]string        `toml:"providers"`
	Lightning map[string]LightningNode `toml:"lightning"`
	Coins     map[string]CoinConfig    `toml:"coins"`

	coins map[string]faucet.Coin
}

// Load reads and validates the faucet configuration. Any problem is fatal
// for the caller: the process must not serve requests on a partial config.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CooldownHours == 0 {
		return fmt.Errorf("cooldown_hours must be set")
	}
	if len(c.Coins) == 0 {
		return fmt.Errorf("no coins configured")
	}
	if c.HistoryDir == "" {
		c.HistoryDir = "db/history"
	}

	c.coins = make(map[string]faucet.Coin, len(c.Coins))
	for rawName, coin := range c.Coins {
		name := faucet.NormalizeCoinCode(rawName)

		amount, err := decimal.NewFromString(coin.Amount)
		if err != nil {
			return fmt.Errorf("coin %s: bad amount %q: %w", name, coin.Amount, err)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("coin %s: amount must be positive, got %s", name, amount)
		}

		network := faucet.Network(coin.Network)
		switch network {
		case faucet.NetworkLightning, faucet.NetworkEthereum, faucet.NetworkArbitrum:
		default:
			return fmt.Errorf("coin %s: unknown network %q", name, coin.Network)
		}

		asset := faucet.AssetKind(coin.Asset)
		switch asset {
		case faucet.AssetNative, faucet.AssetToken:
		default:
			return fmt.Errorf("coin %s: unknown asset kind %q", name, coin.Asset)
		}

		switch network {
		case faucet.NetworkLightning:
			if asset != faucet.AssetNative {
				return fmt.Errorf("coin %s: lightning coins must be native assets", name)
			}
			if _, ok := c.Lightning[coin.Node]; !ok {
				return fmt.Errorf("coin %s: references unknown lightning node %q", name, coin.Node)
			}
		default:
			if _, ok := c.Providers[string(network)]; !ok {
				return fmt.Errorf("coin %s: no provider endpoint configured for network %s", name, network)
			}
			if asset == faucet.AssetToken && coin.Contract == "" {
				return fmt.Errorf("coin %s: token coins need a contract address", name)
			}
		}

		if _, ok := faucet.ExplorerURL(network, name, "txid"); !ok {
			return fmt.Errorf("coin %s: no explorer template for network %s", name, network)
		}

		if _, dup := c.coins[name]; dup {
			return fmt.Errorf("coin %s configured twice", name)
		}
		c.coins[name] = faucet.Coin{
			Name:     name,
			Amount:   amount,
			Network:  network,
			Asset:    asset,
			Contract: coin.Contract,
			Decimals: coin.Decimals,
			Node:     coin.Node,
		}
	}

	return c.validateAlerts()
}

func (c *Config) validateAlerts() error {
	var err error
	if c.Alerts.FrequencySeconds <= 0 {
		c.Alerts.FrequencySeconds = 1800
	}
	c.Alerts.evmThreshold = decimal.Zero
	if c.Alerts.EVMThreshold != "" {
		if c.Alerts.evmThreshold, err = decimal.NewFromString(c.Alerts.EVMThreshold); err != nil {
			return fmt.Errorf("alerts: bad evm_threshold %q: %w", c.Alerts.EVMThreshold, err)
		}
	}
	c.Alerts.lightningThreshold = decimal.Zero
	if c.Alerts.LightningThreshold != "" {
		if c.Alerts.lightningThreshold, err = decimal.NewFromString(c.Alerts.LightningThreshold); err != nil {
			return fmt.Errorf("alerts: bad lightning_threshold %q: %w", c.Alerts.LightningThreshold, err)
		}
	}
	return nil
}

// CoinSet returns the validated, normalized coin table.
func (c *Config) CoinSet() map[string]faucet.Coin {
	return c.coins
}

// Cooldown is the minimum elapsed time between two disbursements to the
// same user for the same coin.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownHours) * time.Hour
}

// SubmitTimeout bounds one backend network round trip.
func (c *Config) SubmitTimeout() time.Duration {
	if c.RequestTimeoutSeconds == 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetEVMThreshold is the parsed balance-alert threshold for EVM wallets.
func (a Alerts) GetEVMThreshold() decimal.Decimal {
	return a.evmThreshold
}

// GetLightningThreshold is the parsed balance-alert threshold for LND
// wallets.
func (a Alerts) GetLightningThreshold() decimal.Decimal {
	return a.lightningThreshold
}
