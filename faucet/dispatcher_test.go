package faucet

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	txid       string
	err        error
	calls      int
	lastDest   string
	lastAmount decimal.Decimal
}

func (s *stubBackend) Submit(ctx context.Context, destination string, amount decimal.Decimal) (string, error) {
	s.calls++
	s.lastDest = destination
	s.lastAmount = amount
	if s.err != nil {
		return "", s.err
	}
	return s.txid, nil
}

func newTestDispatcher(t *testing.T, backend Backend) *Dispatcher {
	t.Helper()
	amount, err := decimal.NewFromString("0.0005")
	require.NoError(t, err)
	return NewDispatcher(DispatcherConfig{
		Coins: map[string]Coin{
			"BTC": {Name: "BTC", Amount: amount, Network: NetworkLightning, Asset: AssetNative, Decimals: 8, Node: "btc"},
		},
		Backends: map[string]Backend{"BTC": backend},
		Cooldown: 24 * time.Hour,
		Logger:   logrus.WithField("component", "dispatcher-test"),
	})
}

func TestDispatchSuccess(t *testing.T) {
	backend := &stubBackend{txid: "abc123"}
	d := newTestDispatcher(t, backend)

	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	assert.Equal(t, "Sent 0.0005 BTC! https://www.blockchain.com/btc-testnet/tx/abc123", reply)
	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, "tb1qdest", backend.lastDest)
	assert.Equal(t, "0.0005", backend.lastAmount.String())
}

func TestDispatchCooldownWaitMessage(t *testing.T) {
	backend := &stubBackend{txid: "abc123"}
	d := newTestDispatcher(t, backend)

	start := time.Unix(1700000000, 0)
	d.now = func() time.Time { return start }
	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	require.Contains(t, reply, "Sent")

	// 1h30m into a 24h window leaves 22h30m
	d.now = func() time.Time { return start.Add(90 * time.Minute) }
	reply = d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	assert.Equal(t, "Please wait another 22h30m before requesting new BTC!", reply)
	assert.Equal(t, 1, backend.calls)
}

func TestDispatchCooldownExpiry(t *testing.T) {
	backend := &stubBackend{txid: "abc123"}
	d := newTestDispatcher(t, backend)

	start := time.Unix(1700000000, 0)
	d.now = func() time.Time { return start }
	d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})

	d.now = func() time.Time { return start.Add(24 * time.Hour) }
	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	assert.Contains(t, reply, "Sent 0.0005 BTC!")
	assert.Equal(t, 2, backend.calls)
}

func TestDispatchUnknownCoin(t *testing.T) {
	backend := &stubBackend{txid: "abc123"}
	d := newTestDispatcher(t, backend)

	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: " x y z ", Destination: "tb1qdest"})
	assert.Equal(t, "Coin not supported!", reply)
	assert.Zero(t, backend.calls)
}

func TestDispatchNormalizesCoinCode(t *testing.T) {
	backend := &stubBackend{txid: "abc123"}
	d := newTestDispatcher(t, backend)

	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: " b t c ", Destination: "tb1qdest"})
	assert.Contains(t, reply, "Sent 0.0005 BTC!")
}

func TestDispatchFailureReleasesReservation(t *testing.T) {
	backend := &stubBackend{err: newError(ErrInsufficientFunds, "insufficient funds in wallet")}
	d := newTestDispatcher(t, backend)

	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	assert.Equal(t, "Faucet out of funds!", reply)

	// the failed attempt must not burn the cooldown window
	backend.err = nil
	reply = d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	assert.Contains(t, reply, "Sent 0.0005 BTC!")
}

func TestDispatchFailureSentences(t *testing.T) {
	testCases := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrInvalidAddress, "Invalid address!"},
		{ErrInsufficientFunds, "Faucet out of funds!"},
		{ErrPendingTx, "Another transaction is still pending, retry in some minutes!"},
		{ErrProviderUnavailable, "Transaction failed, retry later!"},
		{ErrEncoding, "Transaction failed, retry later!"},
		{ErrGeneric, "Transaction failed, retry later!"},
	}
	for _, tc := range testCases {
		backend := &stubBackend{err: newError(tc.kind, "upstream detail")}
		d := newTestDispatcher(t, backend)
		reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
		assert.Equal(t, tc.expected, reply, "kind %s", tc.kind)
	}
}

func TestDispatchMissingBackend(t *testing.T) {
	amount, err := decimal.NewFromString("0.0005")
	require.NoError(t, err)
	d := NewDispatcher(DispatcherConfig{
		Coins: map[string]Coin{
			"BTC": {Name: "BTC", Amount: amount, Network: NetworkLightning, Asset: AssetNative, Decimals: 8, Node: "btc"},
		},
		Backends: map[string]Backend{},
		Cooldown: 24 * time.Hour,
		Logger:   logrus.WithField("component", "dispatcher-test"),
	})

	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	assert.Equal(t, "Transaction failed, retry later!", reply)

	// no reservation was taken, the slot is free once the backend is wired
	status, _ := d.ledger.Reserve("U1", "BTC", time.Now(), 24*time.Hour)
	assert.Equal(t, Reserved, status)
}

func TestDispatchWarnsOnUnmappedExplorer(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	amount, err := decimal.NewFromString("100")
	require.NoError(t, err)
	backend := &stubBackend{txid: "abc123"}
	d := NewDispatcher(DispatcherConfig{
		Coins: map[string]Coin{
			"SOL": {Name: "SOL", Amount: amount, Network: Network("solana"), Asset: AssetNative, Decimals: 9},
		},
		Backends: map[string]Backend{"SOL": backend},
		Cooldown: 24 * time.Hour,
		Logger:   logger.WithField("component", "dispatcher-test"),
	})

	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "SOL", Destination: "somedest"})
	assert.Contains(t, reply, "Sent 100 SOL!")

	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, logrus.WarnLevel, hook.Entries[0].Level)
	assert.Contains(t, hook.Entries[0].Message, "No explorer template")
}

type blockingBackend struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingBackend) Submit(ctx context.Context, destination string, amount decimal.Decimal) (string, error) {
	close(b.started)
	<-b.release
	return "abc123", nil
}

func TestDispatchConcurrentSameUserIsBusy(t *testing.T) {
	backend := &blockingBackend{started: make(chan struct{}), release: make(chan struct{})}
	d := newTestDispatcher(t, backend)

	done := make(chan string, 1)
	go func() {
		done <- d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qdest"})
	}()
	<-backend.started

	// the first request is still mid-flight: the slot is held, nothing is
	// submitted twice
	reply := d.Dispatch(context.Background(), Request{UserID: "U1", CoinCode: "BTC", Destination: "tb1qother"})
	assert.Equal(t, "Please wait another 0h0m before requesting new BTC!", reply)

	close(backend.release)
	assert.Contains(t, <-done, "Sent 0.0005 BTC!")
}
