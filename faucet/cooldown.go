package faucet

import (
	"sync"
	"time"
)

// ReserveStatus is the outcome of CooldownLedger.Reserve.
type ReserveStatus int

const (
	// Reserved means the slot is held by the caller until Commit or
	// Release.
	Reserved ReserveStatus = iota
	// Busy means another request for the same user and coin is mid-flight.
	Busy
	// Wait means the cooldown window has not elapsed yet.
	Wait
)

type cooldownKey struct {
	userID string
	coin   string
}

type cooldownEntry struct {
	lastSuccess time.Time
	reserved    bool
}

// CooldownLedger tracks, per user and coin, when the last successful
// disbursement happened and whether a request is currently in flight.
// The mutex guards only the constant-time bookkeeping of Reserve, Commit
// and Release and is never held across a backend call, so a slow node
// cannot stall unrelated requests. The reservation step is what blocks
// two concurrent requests for the same user and coin from both passing
// the cooldown check while the first network round trip is outstanding.
type CooldownLedger struct {
	mu      sync.Mutex
	entries map[cooldownKey]*cooldownEntry
}

func NewCooldownLedger() *CooldownLedger {
	return &CooldownLedger{entries: make(map[cooldownKey]*cooldownEntry)}
}

// Reserve atomically claims the disbursement slot for (userID, coin).
// The returned duration is how long the caller must wait before the
// window reopens; it is only meaningful for Busy and Wait and is clamped
// to zero or above.
func (l *CooldownLedger) Reserve(userID, coin string, now time.Time, cooldown time.Duration) (ReserveStatus, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := cooldownKey{userID: userID, coin: coin}
	entry, ok := l.entries[key]
	if !ok {
		entry = &cooldownEntry{}
		l.entries[key] = entry
	}

	remaining := entry.lastSuccess.Add(cooldown).Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	if entry.reserved {
		return Busy, remaining
	}
	if remaining > 0 {
		return Wait, remaining
	}
	entry.reserved = true
	return Reserved, 0
}

// Commit records a successful disbursement and frees the slot. The
// timestamp never moves backwards.
func (l *CooldownLedger) Commit(userID, coin string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[cooldownKey{userID: userID, coin: coin}]
	if !ok {
		return
	}
	entry.reserved = false
	if now.After(entry.lastSuccess) {
		entry.lastSuccess = now
	}
}

// Release frees the slot without touching the timestamp, so a user whose
// transaction failed can retry right away.
func (l *CooldownLedger) Release(userID, coin string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.entries[cooldownKey{userID: userID, coin: coin}]; ok {
		entry.reserved = false
	}
}
