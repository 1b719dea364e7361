package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for trigger")
		return ""
	}
}

func TestDebouncerRunsOnlyLatest(t *testing.T) {
	var d Debouncer
	fired := make(chan string, 3)
	var count atomic.Int32

	for _, q := range []string{"i", "in", "ins"} {
		q := q
		d.Schedule(func() {
			count.Add(1)
			fired <- q
		}, 20*time.Millisecond)
	}

	assert.Equal(t, "ins", waitFor(t, fired))
	time.Sleep(60 * time.Millisecond)
	assert.EqualValues(t, 1, count.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerCancel(t *testing.T) {
	var d Debouncer
	var count atomic.Int32

	cancel := d.Schedule(func() { count.Add(1) }, 10*time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 0, count.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerStaleCancelKeepsNewer(t *testing.T) {
	var d Debouncer
	fired := make(chan string, 1)

	stale := d.Schedule(func() { fired <- "old" }, 10*time.Millisecond)
	d.Schedule(func() { fired <- "new" }, 10*time.Millisecond)
	stale()

	assert.Equal(t, "new", waitFor(t, fired))
}

func TestDebouncerFlush(t *testing.T) {
	var d Debouncer
	var count atomic.Int32

	d.Schedule(func() { count.Add(1) }, time.Hour)
	require.True(t, d.Pending())
	assert.True(t, d.Flush())
	assert.EqualValues(t, 1, count.Load())
	assert.False(t, d.Flush())
}

func TestDebouncerStop(t *testing.T) {
	var d Debouncer
	var count atomic.Int32

	d.Schedule(func() { count.Add(1) }, 10*time.Millisecond)
	d.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 0, count.Load())
}
