package faucet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultSubmitTimeout = 60 * time.Second

// Request is one parsed faucet request handed over by the chat adapter.
type Request struct {
	UserID      string
	CoinCode    string
	Destination string
}

// Dispatcher routes a request to the right settlement backend while
// holding a cooldown reservation for the requesting user and coin. It is
// safe for concurrent use; the ledger is its only shared mutable state.
type Dispatcher struct {
	coins    map[string]Coin
	backends map[string]Backend
	ledger   *CooldownLedger
	history  *HistoryStore
	cooldown time.Duration
	timeout  time.Duration
	logger   *logrus.Entry
	now      func() time.Time
}

type DispatcherConfig struct {
	Coins    map[string]Coin
	Backends map[string]Backend
	History  *HistoryStore
	Cooldown time.Duration
	Timeout  time.Duration
	Logger   *logrus.Entry
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	return &Dispatcher{
		coins:    cfg.Coins,
		backends: cfg.Backends,
		ledger:   NewCooldownLedger(),
		history:  cfg.History,
		cooldown: cfg.Cooldown,
		timeout:  timeout,
		logger:   cfg.Logger,
		now:      time.Now,
	}
}

// NormalizeCoinCode strips spaces from a user-typed coin code and
// upper-cases it, so " x y z " resolves the same as "XYZ".
func NormalizeCoinCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, " ", ""))
}

// Dispatch runs one request through validation, cooldown reservation,
// backend submission and ledger commit, and returns the reply for the
// chat adapter. Failure detail is logged in full here; the user only
// ever sees one of the fixed sentences.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) string {
	coinName := NormalizeCoinCode(req.CoinCode)
	coin, ok := d.coins[coinName]
	if !ok {
		return "Coin not supported!"
	}
	backend, ok := d.backends[coinName]
	if !ok {
		d.logger.Errorf("No backend wired for coin %s", coinName)
		return "Transaction failed, retry later!"
	}

	status, remaining := d.ledger.Reserve(req.UserID, coinName, d.now(), d.cooldown)
	if status != Reserved {
		return fmt.Sprintf("Please wait another %s before requesting new %s!", formatWait(remaining), coinName)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	txid, err := backend.Submit(ctx, req.Destination, coin.Amount)
	if err != nil {
		d.ledger.Release(req.UserID, coinName)
		return d.failureMessage(req, coinName, err)
	}

	d.ledger.Commit(req.UserID, coinName, d.now())
	d.recordHistory(req, coin, coinName, txid)

	url, ok := ExplorerURL(coin.Network, coinName, txid)
	if !ok {
		d.logger.Warnf("No explorer template for %s on network %s", coinName, coin.Network)
	}
	d.logger.Infof("Sent %s %s to %s for user %s: %s", coin.Amount, coinName, req.Destination, req.UserID, txid)
	return fmt.Sprintf("Sent %s %s! %s", coin.Amount, coinName, url)
}

func (d *Dispatcher) failureMessage(req Request, coinName string, err error) string {
	kind := ErrGeneric
	var ferr *Error
	if errors.As(err, &ferr) {
		kind = ferr.Kind
	}
	d.logger.Errorf("Disbursement of %s for user %s failed (%s) - with err: %v", coinName, req.UserID, kind, err)

	switch kind {
	case ErrInvalidAddress:
		return "Invalid address!"
	case ErrInsufficientFunds:
		return "Faucet out of funds!"
	case ErrPendingTx:
		return "Another transaction is still pending, retry in some minutes!"
	default:
		return "Transaction failed, retry later!"
	}
}

func (d *Dispatcher) recordHistory(req Request, coin Coin, coinName, txid string) {
	if d.history == nil {
		return
	}
	err := d.history.Record(&Disbursement{
		UserID: req.UserID,
		Coin:   coinName,
		Amount: coin.Amount,
		Txid:   txid,
		SentAt: d.now(),
	})
	if err != nil {
		d.logger.Errorf("Could not record disbursement %s to history db - with err: %v", txid, err)
	}
}

// formatWait renders a remaining cooldown as "<h>h<m>m", truncated to
// whole minutes.
func formatWait(remaining time.Duration) string {
	seconds := int64(remaining / time.Second)
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	return fmt.Sprintf("%dh%dm", hours, minutes)
}
