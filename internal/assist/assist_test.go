package assist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slatepad/slate/internal/dispatch"
)

type fakeProvider struct {
	result string
	err    error
	got    string
	delay  time.Duration
}

func (f *fakeProvider) Transform(ctx context.Context, prompt string) (string, error) {
	f.got = prompt
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.result, f.err
}

func drainFor(t *testing.T, b *dispatch.Bridge, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		b.Drain()
		return cond()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestManager_Process(t *testing.T) {
	b := dispatch.NewBridge()
	p := &fakeProvider{result: "fixed text"}
	m := NewManager(p, b, time.Second)

	var got string
	var gotErr error
	done := false
	m.Process("teh text", "Fix Grammar", func(result string, err error) {
		got, gotErr = result, err
		done = true
	})

	drainFor(t, b, func() bool { return done })
	require.NoError(t, gotErr)
	require.Equal(t, "fixed text", got)
	require.Contains(t, p.got, "Fix grammar and spelling errors")
	require.Contains(t, p.got, "teh text")
	require.NotContains(t, p.got, "{text}")
}

func TestManager_UnknownPrompt(t *testing.T) {
	b := dispatch.NewBridge()
	m := NewManager(&fakeProvider{}, b, time.Second)

	var gotErr error
	done := false
	m.Process("text", "No Such Prompt", func(_ string, err error) {
		gotErr = err
		done = true
	})

	drainFor(t, b, func() bool { return done })
	require.Error(t, gotErr)
	require.Contains(t, gotErr.Error(), "No Such Prompt")
}

func TestManager_NilProvider(t *testing.T) {
	b := dispatch.NewBridge()
	m := NewManager(nil, b, time.Second)

	var gotErr error
	done := false
	m.Process("text", "Summarize", func(_ string, err error) {
		gotErr = err
		done = true
	})

	drainFor(t, b, func() bool { return done })
	require.Error(t, gotErr)
}

func TestManager_ProviderError(t *testing.T) {
	b := dispatch.NewBridge()
	wantErr := errors.New("backend down")
	m := NewManager(&fakeProvider{err: wantErr}, b, time.Second)

	var gotErr error
	done := false
	m.Process("text", "Summarize", func(_ string, err error) {
		gotErr = err
		done = true
	})

	drainFor(t, b, func() bool { return done })
	require.ErrorIs(t, gotErr, wantErr)
}

func TestManager_Timeout(t *testing.T) {
	b := dispatch.NewBridge()
	m := NewManager(&fakeProvider{delay: time.Second}, b, 20*time.Millisecond)

	var gotErr error
	done := false
	m.Process("text", "Summarize", func(_ string, err error) {
		gotErr = err
		done = true
	})

	drainFor(t, b, func() bool { return done })
	require.ErrorIs(t, gotErr, context.DeadlineExceeded)
}

func TestManager_ProcessCustom(t *testing.T) {
	b := dispatch.NewBridge()
	p := &fakeProvider{result: "out"}
	m := NewManager(p, b, time.Second)

	done := false
	m.ProcessCustom("the body", "Translate to French:", func(string, error) { done = true })

	drainFor(t, b, func() bool { return done })
	require.True(t, strings.HasPrefix(p.got, "Translate to French:"))
	require.Contains(t, p.got, "the body")
}

func TestCommandProvider_RunsCommand(t *testing.T) {
	p := CommandProvider{Command: []string{"cat"}}

	out, err := p.Transform(context.Background(), "hello prompt")

	require.NoError(t, err)
	require.Equal(t, "hello prompt", out)
}

func TestCommandProvider_FailureIncludesStderr(t *testing.T) {
	p := CommandProvider{Command: []string{"sh", "-c", "echo nope >&2; exit 3"}}

	_, err := p.Transform(context.Background(), "x")

	require.Error(t, err)
	require.Contains(t, err.Error(), "nope")
}

func TestCommandProvider_EmptyCommand(t *testing.T) {
	p := CommandProvider{}
	_, err := p.Transform(context.Background(), "x")
	require.Error(t, err)
}
