package app

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/slatepad/slate/internal/assist"
	"github.com/slatepad/slate/internal/config"
	"github.com/slatepad/slate/internal/editor"
	"github.com/slatepad/slate/internal/pubsub"
	"github.com/slatepad/slate/internal/ui/editorview"
	"github.com/slatepad/slate/internal/ui/styles"
	"github.com/slatepad/slate/internal/watcher"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	os.Exit(m.Run())
}

type fakeProvider struct {
	result string
}

func (f fakeProvider) Transform(_ context.Context, _ string) (string, error) {
	return f.result, nil
}

func newTestApp(t *testing.T, content string, provider assist.Provider) (Model, *editor.Session) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Editor.RefreshDebounceMs = 5
	cfg.Editor.HighlightDebounceMs = 5
	cfg.Editor.DrainIntervalMs = 10

	session := editor.New(cfg.Editor, nil)
	doc, err := session.OpenDocument("doc-1", "Python", content)
	require.NoError(t, err)

	var mgr *assist.Manager
	if provider != nil {
		mgr = assist.NewManager(provider, session.Bridge(), time.Second)
	}

	view := editorview.New(session, doc.ID(), "", styles.NewCatalogue(cfg.Theme), cfg.Editor.TabWidth)
	m := New(Options{
		Config:  cfg,
		Session: session,
		Assist:  mgr,
		View:    view,
	})
	return m, session
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestApp_TypingReachesDocument(t *testing.T) {
	m, session := newTestApp(t, "", nil)

	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	require.Equal(t, "x", session.Document("doc-1").Text())
	require.True(t, m.view.Dirty())
}

func TestApp_DrainTickPumpsBridge(t *testing.T) {
	m, session := newTestApp(t, "x = 1", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	doc := session.Document("doc-1")
	edit := doc.Insert(0, "# ")
	session.OnEdit("doc-1", edit)

	require.Eventually(t, func() bool {
		m, _ = update(m, drainTickMsg(time.Now()))
		return session.Store("doc-1").TagAt(0) == "comment"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestApp_DrainTickReschedules(t *testing.T) {
	m, _ := newTestApp(t, "", nil)

	_, cmd := update(m, drainTickMsg(time.Now()))

	require.NotNil(t, cmd, "the drain tick must re-arm itself")
}

func TestApp_StatusBarShowsDocument(t *testing.T) {
	m, _ := newTestApp(t, "x = 1", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()

	require.Contains(t, out, "[untitled]")
	require.Contains(t, out, "Python")
}

func TestApp_StatusMsgDisplayed(t *testing.T) {
	m, _ := newTestApp(t, "", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = update(m, editorview.StatusMsg("saved /tmp/f.py"))

	require.Contains(t, m.View(), "saved /tmp/f.py")
}

func TestApp_AssistReplacesLine(t *testing.T) {
	m, session := newTestApp(t, "teh line", fakeProvider{result: "the line"})
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = update(m, editorview.AssistRequestMsg{
		DocID: "doc-1", Line: 0, Text: "teh line",
	})

	require.Eventually(t, func() bool {
		m, _ = update(m, drainTickMsg(time.Now()))
		return session.Document("doc-1").Text() == "the line"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestApp_AssistStaleResultDropped(t *testing.T) {
	m, session := newTestApp(t, "teh line", fakeProvider{result: "the line"})
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = update(m, editorview.AssistRequestMsg{
		DocID: "doc-1", Line: 0, Text: "teh line",
	})

	// The user keeps typing before the result lands.
	doc := session.Document("doc-1")
	session.OnEdit("doc-1", doc.Insert(0, "! "))

	require.Eventually(t, func() bool {
		m, _ = update(m, drainTickMsg(time.Now()))
		return strings.Contains(m.notes.status, "discarded")
	}, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, "! teh line", session.Document("doc-1").Text())
}

func TestApp_AssistWithoutManager(t *testing.T) {
	m, _ := newTestApp(t, "some line", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = update(m, editorview.AssistRequestMsg{
		DocID: "doc-1", Line: 0, Text: "some line",
	})

	require.Contains(t, m.notes.status, "no assist command")
}

func TestApp_ConfigReloadApplied(t *testing.T) {
	m, _ := newTestApp(t, "x = 1", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	fresh := config.Defaults()
	fresh.Editor.HighlightDebounceMs = 123
	m.reload = func() (config.Config, error) { return fresh, nil }

	m, _ = update(m, pubsub.Event[watcher.ReloadEvent]{
		Type:    pubsub.ConfigReloadedEvent,
		Payload: watcher.ReloadEvent{Path: "config.yaml"},
	})

	require.Equal(t, 123, m.cfg.Editor.HighlightDebounceMs)
	require.Contains(t, m.notes.status, "config reloaded")
}

func TestApp_SmokeRun(t *testing.T) {
	m, _ := newTestApp(t, "def foo(): pass", nil)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("[untitled]"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
