package performance

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecentMarkers(t *testing.T) {
	tracker := NewTracker()

	first := tracker.StartOperation("op_a", "t1")
	first.SetSuccess(true)
	first.AddMetadata("path", "/cart")
	first.Complete()
	tracker.StartOperation("op_b", "t2")

	recent := tracker.GetRecentMarkers(10)
	require.Len(t, recent, 2)

	// newest first
	assert.Equal(t, "op_b", recent[0].Operation)
	assert.Equal(t, "t2", recent[0].TenantID)
	assert.False(t, recent[0].Completed)

	assert.Equal(t, "op_a", recent[1].Operation)
	assert.True(t, recent[1].Completed)
	assert.True(t, recent[1].Success)
	assert.Equal(t, "/cart", recent[1].Metadata["path"])
	assert.GreaterOrEqual(t, recent[1].Duration, recent[1].EndTime.Sub(recent[1].StartTime))
}

func TestTrackerMarkerError(t *testing.T) {
	tracker := NewTracker()

	marker := tracker.StartOperation("op", "t1")
	marker.SetSuccess(true)
	marker.SetError(errors.New("upstream down"))
	marker.Complete()
	marker.Complete() // double completion is a no-op

	recent := tracker.GetRecentMarkers(1)
	require.Len(t, recent, 1)
	assert.False(t, recent[0].Success)
	assert.Equal(t, "upstream down", recent[0].Error)
}

func TestTrackerSetTenantID(t *testing.T) {
	tracker := NewTracker()

	marker := tracker.StartOperation("middleware_tenant_resolution", "unknown")
	marker.SetTenantID("t1")

	recent := tracker.GetRecentMarkers(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "t1", recent[0].TenantID)
}

func TestTrackerSnapshotWhileRunning(t *testing.T) {
	tracker := NewTracker()
	marker := tracker.StartOperation("op", "t1")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			marker.AddMetadata("iteration", i)
			marker.SetSuccess(true)
		}
		marker.Complete()
	}()

	// snapshots race against the mutating goroutine; the race detector
	// verifies the locking
	for i := 0; i < 1000; i++ {
		tracker.GetRecentMarkers(1)
	}
	wg.Wait()

	recent := tracker.GetRecentMarkers(1)
	require.Len(t, recent, 1)
	assert.True(t, recent[0].Completed)
	assert.Equal(t, 999, recent[0].Metadata["iteration"])
}

func TestTrackerSnapshotMetadataIsolated(t *testing.T) {
	tracker := NewTracker()
	marker := tracker.StartOperation("op", "t1")
	marker.AddMetadata("key", "before")

	snapshot := tracker.GetRecentMarkers(1)[0]
	marker.AddMetadata("key", "after")

	assert.Equal(t, "before", snapshot.Metadata["key"])
}
