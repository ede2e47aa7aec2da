// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/vtex"
)

// holidayEntry is one tenant's cached holiday list
type holidayEntry struct {
	holidays    []vtex.Holiday
	lastUpdated time.Time
}

// HolidayStore caches per-tenant logistics holiday lists. This is the one
// cacheable upstream read in the gateway; cart responses are never cached.
type HolidayStore struct {
	entries map[string]*holidayEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewHolidayStore creates a holiday cache with the given TTL
func NewHolidayStore(ttl time.Duration) *HolidayStore {
	return &HolidayStore{
		entries: make(map[string]*holidayEntry),
		ttl:     ttl,
	}
}

// Get returns the cached holidays for a tenant, or false when absent or
// expired.
func (hs *HolidayStore) Get(tenantID string) ([]vtex.Holiday, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	entry, exists := hs.entries[tenantID]
	if !exists {
		return nil, false
	}
	if time.Since(entry.lastUpdated) > hs.ttl {
		return nil, false
	}
	return entry.holidays, true
}

// Set stores a tenant's holiday list
func (hs *HolidayStore) Set(tenantID string, holidays []vtex.Holiday) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.entries[tenantID] = &holidayEntry{
		holidays:    holidays,
		lastUpdated: time.Now(),
	}
}

// Invalidate drops a tenant's cached holidays
func (hs *HolidayStore) Invalidate(tenantID string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	delete(hs.entries, tenantID)
}
