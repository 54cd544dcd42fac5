package services

import (
	"context"
	"sync"
	"time"

	"carbontrack/internal/carbon"
)

type guestEntry struct {
	ledger   *carbon.Ledger
	lastSeen time.Time
}

// GuestLedgers keeps in-memory ledgers for sessions without an account.
// Entries idle for longer than the TTL are evicted, and at most limit
// entries are held at once.
type GuestLedgers struct {
	mu      sync.Mutex
	entries map[string]*guestEntry
	ttl     time.Duration
	limit   int
	opts    []carbon.LedgerOption
	now     func() time.Time
}

// NewGuestLedgers creates a store whose new ledgers are built with opts.
// A limit <= 0 means no limit.
func NewGuestLedgers(ttl time.Duration, limit int, opts ...carbon.LedgerOption) *GuestLedgers {
	return &GuestLedgers{
		entries: make(map[string]*guestEntry),
		ttl:     ttl,
		limit:   limit,
		opts:    opts,
		now:     time.Now,
	}
}

// Load returns a copy of the guest's ledger. Unknown guests get a zeroed
// ledger that is not kept until it is handed back with Store.
func (g *GuestLedgers) Load(guestID string) *carbon.Ledger {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[guestID]
	if !ok {
		return carbon.NewDefaultLedger(g.opts...)
	}
	e.lastSeen = g.now()
	return e.ledger.Clone()
}

// Store replaces the guest's ledger. When the store is full, the least
// recently seen guest makes room for a new one.
func (g *GuestLedgers) Store(guestID string, l *carbon.Ledger) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.entries[guestID]; !ok && g.limit > 0 && len(g.entries) >= g.limit {
		g.dropOldestLocked()
	}
	g.entries[guestID] = &guestEntry{ledger: l.Clone(), lastSeen: g.now()}
}

func (g *GuestLedgers) dropOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range g.entries {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(g.entries, oldestID)
}

// Len returns the number of live guest ledgers.
func (g *GuestLedgers) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

// Evict drops ledgers idle for longer than the TTL and returns how many
// were removed.
func (g *GuestLedgers) Evict() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-g.ttl)
	removed := 0
	for id, e := range g.entries {
		if e.lastSeen.Before(cutoff) {
			delete(g.entries, id)
			removed++
		}
	}
	return removed
}

// RunEviction calls Evict every interval until ctx is done.
func (g *GuestLedgers) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Evict()
		}
	}
}
