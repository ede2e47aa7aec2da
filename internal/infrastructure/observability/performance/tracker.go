package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides basic aggregation
type Tracker struct {
	markers    map[string]*Marker
	order      []string
	maxMarkers int
	mu         sync.RWMutex
	started    time.Time
	sequence   uint64
}

// NewTracker creates a new performance tracker
func NewTracker() *Tracker {
	return &Tracker{
		markers:    make(map[string]*Marker),
		maxMarkers: 10000,
		started:    time.Now(),
	}
}

// StartOperation creates and registers a marker for a new operation
func (t *Tracker) StartOperation(operation, tenantID string) *Marker {
	marker := &Marker{
		operation: operation,
		tenantID:  tenantID,
		startTime: time.Now(),
		metadata:  make(map[string]any),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.sequence++
	id := fmt.Sprintf("%s-%d", operation, t.sequence)
	t.markers[id] = marker
	t.order = append(t.order, id)

	// Evict the oldest markers once the retention cap is reached
	for len(t.order) > t.maxMarkers {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.markers, oldest)
	}

	return marker
}

// GetRecentMarkers returns snapshots of up to limit most recent markers,
// newest first.
func (t *Tracker) GetRecentMarkers(limit int) []MarkerSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 || limit > len(t.order) {
		limit = len(t.order)
	}

	result := make([]MarkerSnapshot, 0, limit)
	for i := len(t.order) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, t.markers[t.order[i]].Snapshot())
	}
	return result
}

// Uptime returns how long this tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
