package faucet

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/syndtr/goleveldb/leveldb"
)

// Disbursement is one successful faucet payout, kept for operator audit.
type Disbursement struct {
	UserID string
	Coin   string
	Amount decimal.Decimal
	Txid   string
	SentAt time.Time
}

// HistoryStore persists every successful disbursement to leveldb. It is
// an audit trail only: the cooldown ledger stays in memory and is never
// restored from it.
type HistoryStore struct {
	db *leveldb.DB
}

func OpenHistoryStore(path string) (*HistoryStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) Record(d *Disbursement) error {
	value, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.db.Put(historyKey(d.Txid), value, nil)
}

func (s *HistoryStore) Get(txid string) (*Disbursement, error) {
	value, err := s.db.Get(historyKey(txid), nil)
	if err != nil {
		return nil, err
	}
	var d Disbursement
	if err := json.Unmarshal(value, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func historyKey(txid string) []byte {
	return []byte("disbursement-" + txid)
}
