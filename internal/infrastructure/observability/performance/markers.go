// Package performance provides performance monitoring data structures and
// utilities for tracking operation performance across cartgate.
package performance

import (
	"maps"
	"sync"
	"time"
)

// Marker represents a single performance measurement for an operation. A
// marker is mutated by the request goroutine that started it while the
// tracker may snapshot it concurrently, so all access goes through methods.
type Marker struct {
	mu sync.Mutex

	operation string
	tenantID  string
	startTime time.Time
	endTime   time.Time
	duration  time.Duration
	success   bool
	err       string
	metadata  map[string]any
	completed bool
}

// MarkerSnapshot is a point-in-time copy of a marker, safe to read and
// serialize while the operation is still running.
type MarkerSnapshot struct {
	Operation string         `json:"operation"`       // e.g., "checkout:get_cart"
	TenantID  string         `json:"tenantId"`        // Tenant identifier for multi-tenant isolation
	StartTime time.Time      `json:"startTime"`       // When the operation started
	EndTime   time.Time      `json:"endTime"`         // When the operation completed
	Duration  time.Duration  `json:"duration"`        // Total operation duration
	Success   bool           `json:"success"`         // Whether the operation completed successfully
	Error     string         `json:"error,omitempty"` // Error message if operation failed
	Metadata  map[string]any `json:"metadata"`        // Additional operation-specific data
	Completed bool           `json:"completed"`       // Whether Complete() has been called
}

// Complete marks the operation as finished and calculates final metrics
func (m *Marker) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.completed {
		return // Prevent double completion
	}

	m.endTime = time.Now()
	m.duration = m.endTime.Sub(m.startTime)
	m.completed = true
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err.Error()
	m.success = false
}

// SetTenantID records the tenant once resolution has produced one
func (m *Marker) SetTenantID(tenantID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenantID = tenantID
}

// AddMetadata adds key-value metadata to the marker
func (m *Marker) AddMetadata(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.metadata == nil {
		m.metadata = make(map[string]any)
	}
	m.metadata[key] = value
}

// Snapshot copies the marker's current state
func (m *Marker) Snapshot() MarkerSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MarkerSnapshot{
		Operation: m.operation,
		TenantID:  m.tenantID,
		StartTime: m.startTime,
		EndTime:   m.endTime,
		Duration:  m.duration,
		Success:   m.success,
		Error:     m.err,
		Metadata:  maps.Clone(m.metadata),
		Completed: m.completed,
	}
}
