package dispatch

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBridge_DrainFIFO(t *testing.T) {
	b := NewBridge()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		b.Post(func() { got = append(got, i) })
	}

	n := b.Drain()

	require.Equal(t, 5, n)
	require.Equal(t, []int{0, 1, 2, 3, 4}, got)
	require.Equal(t, 0, b.Len())
}

func TestBridge_EmptyDrainNoOp(t *testing.T) {
	b := NewBridge()
	require.Equal(t, 0, b.Drain())
	require.Equal(t, 0, b.Drain())
}

func TestBridge_NilCallbackIgnored(t *testing.T) {
	b := NewBridge()
	b.Post(nil)
	require.Equal(t, 0, b.Len())
}

func TestBridge_PostDuringDrainRunsNextDrain(t *testing.T) {
	b := NewBridge()
	var second bool
	b.Post(func() {
		b.Post(func() { second = true })
	})

	require.Equal(t, 1, b.Drain())
	require.False(t, second)
	require.Equal(t, 1, b.Drain())
	require.True(t, second)
}

func TestBridge_PanicDoesNotStopDrain(t *testing.T) {
	b := NewBridge()
	var after bool
	b.Post(func() { panic("boom") })
	b.Post(func() { after = true })

	n := b.Drain()

	require.Equal(t, 2, n)
	require.True(t, after)
}

func TestBridge_ConcurrentPost(t *testing.T) {
	b := NewBridge()
	var wg sync.WaitGroup
	const producers = 8
	const perProducer = 50

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Post(func() {})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, producers*perProducer, b.Drain())
}

func TestBridge_PerGoroutineOrderPreserved(t *testing.T) {
	b := NewBridge()
	var got []int
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			i := i
			b.Post(func() { got = append(got, i) })
		}
		close(done)
	}()
	<-done

	b.Drain()

	require.Len(t, got, 20)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestRunAsync_DeliversResultOnDrain(t *testing.T) {
	b := NewBridge()
	var got string
	var gotErr error

	RunAsync(b, func() (string, error) {
		return "done", nil
	}, func(result string, err error) {
		got, gotErr = result, err
	})

	require.Eventually(t, func() bool {
		b.Drain()
		return got != ""
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "done", got)
	require.NoError(t, gotErr)
}

func TestRunAsync_DeliversError(t *testing.T) {
	b := NewBridge()
	wantErr := errors.New("op failed")
	var gotErr error
	delivered := make(chan struct{})

	RunAsync(b, func() (int, error) {
		return 0, wantErr
	}, func(_ int, err error) {
		gotErr = err
		close(delivered)
	})

	require.Eventually(t, func() bool {
		return b.Drain() > 0
	}, time.Second, 5*time.Millisecond)
	<-delivered
	require.ErrorIs(t, gotErr, wantErr)
}
