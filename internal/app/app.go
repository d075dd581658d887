// Package app owns the bubbletea program: it composes the editor pane and
// status bar, drains the dispatch bridge on a fixed cadence, and reacts to
// document and config-reload events.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/slatepad/slate/internal/assist"
	"github.com/slatepad/slate/internal/config"
	"github.com/slatepad/slate/internal/editor"
	"github.com/slatepad/slate/internal/log"
	"github.com/slatepad/slate/internal/pubsub"
	"github.com/slatepad/slate/internal/ui/editorview"
	"github.com/slatepad/slate/internal/ui/styles"
	"github.com/slatepad/slate/internal/watcher"
)

type drainTickMsg time.Time

// notes holds mutable state that bridge callbacks write to. Callbacks run
// during Drain on the update goroutine, so no locking is needed, but they
// outlive any single copy of the value-typed Model.
type notes struct {
	status string
}

// Options configures a new app model.
type Options struct {
	Config  config.Config
	Session *editor.Session
	Assist  *assist.Manager
	Watcher *watcher.Watcher
	Reload  func() (config.Config, error)
	View    editorview.Model
}

// Model is the root bubbletea model.
type Model struct {
	cfg     config.Config
	session *editor.Session
	view    editorview.Model
	assist  *assist.Manager
	watch   *watcher.Watcher
	reload  func() (config.Config, error)

	docEvents *pubsub.ContinuousListener[pubsub.DocumentEvent]
	cfgEvents *pubsub.ContinuousListener[watcher.ReloadEvent]
	cancel    context.CancelFunc

	width, height int
	notes         *notes
}

// New creates the root model.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:       opts.Config,
		session:   opts.Session,
		view:      opts.View,
		assist:    opts.Assist,
		watch:     opts.Watcher,
		reload:    opts.Reload,
		cancel:    cancel,
		notes:     &notes{},
		docEvents: pubsub.NewContinuousListener(ctx, opts.Session.Broker()),
	}
	if opts.Watcher != nil {
		m.cfgEvents = pubsub.NewContinuousListener(ctx, opts.Watcher.Broker())
	}
	return m
}

// Init starts the drain tick and event listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.drainTick(), m.docEvents.Listen()}
	if m.cfgEvents != nil {
		cmds = append(cmds, m.cfgEvents.Listen())
	}
	return tea.Batch(cmds...)
}

func (m Model) drainTick() tea.Cmd {
	interval := time.Duration(m.cfg.Editor.DrainIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return drainTickMsg(t)
	})
}

// Update routes messages. Everything here, including drained bridge
// callbacks, runs on the single update goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case drainTickMsg:
		m.session.Bridge().Drain()
		return m, m.drainTick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+q" || msg.String() == "ctrl+c" {
			return m, m.quit()
		}

	case editorview.StatusMsg:
		m.notes.status = string(msg)
		if strings.HasPrefix(string(msg), "saved ") {
			m.view.MarkClean()
		}
		return m, nil

	case editorview.AssistRequestMsg:
		m.runAssist(msg)
		m.notes.status = "transforming line..."
		return m, nil

	case pubsub.Event[pubsub.DocumentEvent]:
		return m, m.docEvents.Listen()

	case pubsub.Event[watcher.ReloadEvent]:
		m.applyConfigReload()
		if m.cfgEvents != nil {
			return m, m.cfgEvents.Listen()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// runAssist hands one line to the background transform. The completion
// callback re-validates the line before applying: the edit the user made
// in the meantime wins and the stale result is dropped.
func (m Model) runAssist(req editorview.AssistRequestMsg) {
	if m.assist == nil {
		m.notes.status = "no assist command configured"
		return
	}
	session := m.session
	notes := m.notes
	m.assist.Process(req.Text, assist.Prompts[0].Name, func(result string, err error) {
		if err != nil {
			log.ErrorErr(log.CatAssist, "transform failed", err)
			notes.status = "transform failed: " + err.Error()
			return
		}
		doc := session.Document(req.DocID)
		if doc == nil || req.Line >= doc.LineCount() || doc.Line(req.Line) != req.Text {
			log.Debug(log.CatAssist, "dropping stale transform result", "doc", req.DocID, "line", req.Line)
			notes.status = "line changed, transform discarded"
			return
		}
		start, end := doc.LineSpan(req.Line)
		edit := doc.Replace(start, end, strings.TrimRight(result, "\n"))
		session.OnEdit(req.DocID, edit)
		notes.status = "line transformed"
	})
}

func (m *Model) applyConfigReload() {
	if m.reload == nil {
		return
	}
	cfg, err := m.reload()
	if err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err)
		m.notes.status = "config reload failed: " + err.Error()
		return
	}
	m.cfg = cfg
	m.session.ReloadConfig(cfg.Editor)
	m.notes.status = "config reloaded"
	log.Info(log.CatConfig, "config reloaded")
}

func (m Model) quit() tea.Cmd {
	m.cancel()
	m.session.Close()
	if m.watch != nil {
		_ = m.watch.Stop()
	}
	return tea.Quit
}

// View composes the editor pane over the status bar.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}
	return m.view.View() + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	doc := m.session.Document(m.view.DocID())
	if doc == nil {
		return styles.StatusBar.Width(m.width).Render("")
	}

	name := m.view.Path()
	if name == "" {
		name = "[untitled]"
	}
	if m.width > 20 {
		name = runewidth.Truncate(name, m.width/3, "…")
	}
	if m.view.Dirty() {
		name += " *"
	}
	left := styles.StatusAccent.Render(" "+name+" ") +
		styles.StatusBar.Render(" "+doc.Language()+" ")
	if doc.IsLarge() {
		left += styles.StatusBar.Render("[large] ")
	}

	row, col := m.view.Position()
	right := fmt.Sprintf(" %d:%d ", row, col)
	if store := m.session.Store(m.view.DocID()); store != nil {
		right = fmt.Sprintf(" %d spans %s", store.Count(), right)
	}
	right = styles.StatusBar.Render(right)

	middle := ""
	if m.notes.status != "" {
		middle = styles.Message.Render(" " + m.notes.status + " ")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + middle + styles.StatusBar.Render(strings.Repeat(" ", gap)) + right
}
