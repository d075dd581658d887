package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slatepad/slate/internal/dispatch"
)

func TestDebouncer_FiresAfterDelay(t *testing.T) {
	d := New(nil)
	var fired atomic.Int32

	d.Schedule("doc-1:highlight", 10*time.Millisecond, func() { fired.Add(1) })

	require.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 0, d.Pending())
}

func TestDebouncer_BurstCollapsesToOne(t *testing.T) {
	d := New(nil)
	var fired atomic.Int32

	for i := 0; i < 3; i++ {
		d.Schedule("doc-1:highlight", 20*time.Millisecond, func() { fired.Add(1) })
	}

	require.Eventually(t, func() bool {
		return fired.Load() > 0
	}, time.Second, 5*time.Millisecond)

	// Give a stale timer every chance to misfire.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := New(nil)
	var refresh, highlight atomic.Int32

	d.Schedule("doc-1:refresh", 10*time.Millisecond, func() { refresh.Add(1) })
	d.Schedule("doc-1:highlight", 10*time.Millisecond, func() { highlight.Add(1) })

	require.Equal(t, 2, d.Pending())
	require.Eventually(t, func() bool {
		return refresh.Load() == 1 && highlight.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := New(nil)
	var fired atomic.Int32

	d.Schedule("doc-1:highlight", 10*time.Millisecond, func() { fired.Add(1) })
	d.Cancel("doc-1:highlight")

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())
	require.False(t, d.Has("doc-1:highlight"))
}

func TestDebouncer_CancelPrefix(t *testing.T) {
	d := New(nil)
	var other atomic.Int32

	d.Schedule("doc-1:refresh", 10*time.Millisecond, func() { t.Error("doc-1 timer fired after cancel") })
	d.Schedule("doc-1:highlight", 10*time.Millisecond, func() { t.Error("doc-1 timer fired after cancel") })
	d.Schedule("doc-2:highlight", 10*time.Millisecond, func() { other.Add(1) })

	d.CancelPrefix("doc-1:")

	require.Equal(t, 1, d.Pending())
	require.Eventually(t, func() bool {
		return other.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_CancelAll(t *testing.T) {
	d := New(nil)
	d.Schedule("a", time.Minute, func() {})
	d.Schedule("b", time.Minute, func() {})

	d.CancelAll()

	require.Equal(t, 0, d.Pending())
}

func TestDebouncer_RescheduleReplacesCallback(t *testing.T) {
	d := New(nil)
	var got atomic.Int32

	d.Schedule("k", 15*time.Millisecond, func() { got.Store(1) })
	d.Schedule("k", 15*time.Millisecond, func() { got.Store(2) })

	require.Eventually(t, func() bool {
		return got.Load() != 0
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(2), got.Load())
}

func TestDebouncer_DeliversThroughBridge(t *testing.T) {
	b := dispatch.NewBridge()
	d := New(b)
	var fired bool

	d.Schedule("k", 5*time.Millisecond, func() { fired = true })

	// The callback lands on the bridge, not the timer goroutine.
	require.Eventually(t, func() bool {
		return b.Len() > 0
	}, time.Second, time.Millisecond)
	require.False(t, fired)

	b.Drain()
	require.True(t, fired)
}
