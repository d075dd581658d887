// Package editorview renders one open document: a scrolling pane of
// highlighted lines with a cursor, a line-number gutter, and a go-to-line
// prompt. All document mutations happen here, on the update goroutine, and
// are reported to the session so the highlight pipeline can react.
package editorview

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/slatepad/slate/internal/editor"
	"github.com/slatepad/slate/internal/highlight"
	"github.com/slatepad/slate/internal/keys"
	"github.com/slatepad/slate/internal/ui/styles"
)

// StatusMsg carries a transient status line for the app frame.
type StatusMsg string

// AssistRequestMsg asks the app to run a background text transform on one
// line of the document.
type AssistRequestMsg struct {
	DocID string
	Line  int
	Text  string
}

// Model is the editor pane for a single document.
type Model struct {
	session *editor.Session
	docID   string
	path    string

	cat      *styles.Catalogue
	keys     keys.KeyMap
	tabWidth int

	width  int
	height int

	top        int // first visible line
	row, col   int // cursor, rune-based
	desiredCol int
	dirty      bool

	gotoInput  textinput.Model
	gotoActive bool
}

// New creates an editor pane bound to an open document.
func New(session *editor.Session, docID, path string, cat *styles.Catalogue, tabWidth int) Model {
	ti := textinput.New()
	ti.Placeholder = "line number"
	ti.CharLimit = 10
	ti.Width = 12
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return Model{
		session:   session,
		docID:     docID,
		path:      path,
		cat:       cat,
		keys:      keys.DefaultKeyMap(),
		tabWidth:  tabWidth,
		gotoInput: ti,
	}
}

// DocID returns the id of the document this pane edits.
func (m Model) DocID() string { return m.docID }

// Path returns the file backing this pane, if any.
func (m Model) Path() string { return m.path }

// Dirty reports whether the document has unsaved changes.
func (m Model) Dirty() bool { return m.dirty }

// Position returns the cursor position as 1-based line and column.
func (m Model) Position() (int, int) { return m.row + 1, m.col + 1 }

// SetSize resizes the pane and reports the new visible range.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
	m.notifyViewport()
}

// Update handles key input for the pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.gotoActive {
		return m.updateGoto(keyMsg)
	}

	doc := m.session.Document(m.docID)
	if doc == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(m.row-1, m.desiredCol)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(m.row+1, m.desiredCol)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveLeft()
	case key.Matches(keyMsg, m.keys.Right):
		m.moveRight()
	case key.Matches(keyMsg, m.keys.LineHome):
		m.moveCursor(m.row, 0)
	case key.Matches(keyMsg, m.keys.LineEnd):
		m.moveCursor(m.row, lineLen(doc.Line(m.row)))
	case key.Matches(keyMsg, m.keys.PageUp):
		m.page(-1)
	case key.Matches(keyMsg, m.keys.PageDown):
		m.page(1)
	case key.Matches(keyMsg, m.keys.DocHome):
		m.moveCursor(0, 0)
	case key.Matches(keyMsg, m.keys.DocEnd):
		last := doc.LineCount() - 1
		m.moveCursor(last, lineLen(doc.Line(last)))
	case key.Matches(keyMsg, m.keys.GotoLine):
		m.gotoActive = true
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
	case key.Matches(keyMsg, m.keys.Enter):
		m.insert("\n")
	case key.Matches(keyMsg, m.keys.Tab):
		m.insert("\t")
	case key.Matches(keyMsg, m.keys.Backspace):
		m.deleteLeft()
	case key.Matches(keyMsg, m.keys.Delete):
		m.deleteRight()
	case key.Matches(keyMsg, m.keys.Save):
		return m, m.save()
	case key.Matches(keyMsg, m.keys.Assist):
		line := doc.Line(m.row)
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		row := m.row
		id := m.docID
		return m, func() tea.Msg {
			return AssistRequestMsg{DocID: id, Line: row, Text: line}
		}
	default:
		if keyMsg.Type == tea.KeyRunes && !keyMsg.Alt {
			m.insert(string(keyMsg.Runes))
		} else if keyMsg.Type == tea.KeySpace {
			m.insert(" ")
		}
	}
	return m, nil
}

func (m Model) updateGoto(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.gotoActive = false
		m.gotoInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.gotoActive = false
		m.gotoInput.Blur()
		n, err := strconv.Atoi(strings.TrimSpace(m.gotoInput.Value()))
		if err != nil {
			return m, nil
		}
		m.moveCursor(n-1, 0)
		return m, nil
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// ReplaceLine swaps the content of one line if it still reads as expected.
// Used by deferred operations whose document may have moved on underneath
// them; a mismatch drops the result.
func (m *Model) ReplaceLine(line int, expect, text string) bool {
	doc := m.session.Document(m.docID)
	if doc == nil || line < 0 || line >= doc.LineCount() {
		return false
	}
	if doc.Line(line) != expect {
		return false
	}
	start, end := doc.LineSpan(line)
	edit := doc.Replace(start, end, text)
	m.session.OnEdit(m.docID, edit)
	m.dirty = true
	m.clampCursor()
	return true
}

func (m *Model) insert(s string) {
	doc := m.session.Document(m.docID)
	off := doc.OffsetAt(m.row, m.col)
	edit := doc.Insert(off, s)
	m.session.OnEdit(m.docID, edit)
	m.dirty = true
	m.row, m.col = doc.PositionAt(off + len([]rune(s)))
	m.desiredCol = m.col
	m.ensureVisible()
	m.notifyViewport()
}

func (m *Model) deleteLeft() {
	doc := m.session.Document(m.docID)
	off := doc.OffsetAt(m.row, m.col)
	if off == 0 {
		return
	}
	edit := doc.Delete(off-1, off)
	m.session.OnEdit(m.docID, edit)
	m.dirty = true
	m.row, m.col = doc.PositionAt(off - 1)
	m.desiredCol = m.col
	m.ensureVisible()
	m.notifyViewport()
}

func (m *Model) deleteRight() {
	doc := m.session.Document(m.docID)
	off := doc.OffsetAt(m.row, m.col)
	if off >= doc.Len() {
		return
	}
	edit := doc.Delete(off, off+1)
	m.session.OnEdit(m.docID, edit)
	m.dirty = true
	m.clampCursor()
}

func (m *Model) moveLeft() {
	if m.col > 0 {
		m.moveCursor(m.row, m.col-1)
		return
	}
	if m.row > 0 {
		doc := m.session.Document(m.docID)
		m.moveCursor(m.row-1, lineLen(doc.Line(m.row-1)))
	}
}

func (m *Model) moveRight() {
	doc := m.session.Document(m.docID)
	if m.col < lineLen(doc.Line(m.row)) {
		m.moveCursor(m.row, m.col+1)
		return
	}
	if m.row < doc.LineCount()-1 {
		m.moveCursor(m.row+1, 0)
	}
}

func (m *Model) page(dir int) {
	step := m.height - 1
	if step < 1 {
		step = 1
	}
	m.moveCursor(m.row+dir*step, m.desiredCol)
}

func (m *Model) moveCursor(row, col int) {
	doc := m.session.Document(m.docID)
	if doc == nil {
		return
	}
	if row < 0 {
		row = 0
	}
	if last := doc.LineCount() - 1; row > last {
		row = last
	}
	m.desiredCol = col
	if n := lineLen(doc.Line(row)); col > n {
		col = n
	}
	if col < 0 {
		col = 0
	}
	m.row, m.col = row, col
	m.ensureVisible()
	m.notifyViewport()
}

func (m *Model) clampCursor() {
	doc := m.session.Document(m.docID)
	if doc == nil {
		return
	}
	if last := doc.LineCount() - 1; m.row > last {
		m.row = last
	}
	if n := lineLen(doc.Line(m.row)); m.col > n {
		m.col = n
	}
}

// ensureVisible scrolls so the cursor line is on screen.
func (m *Model) ensureVisible() {
	if m.height <= 0 {
		return
	}
	if m.row < m.top {
		m.top = m.row
	}
	if m.row >= m.top+m.height {
		m.top = m.row - m.height + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

func (m *Model) notifyViewport() {
	if m.height <= 0 {
		return
	}
	m.session.OnViewportChanged(m.docID, m.top, m.top+m.height-1)
}

func (m Model) save() tea.Cmd {
	if m.path == "" {
		return func() tea.Msg { return StatusMsg("no file to save to") }
	}
	doc := m.session.Document(m.docID)
	if doc == nil {
		return nil
	}
	text := doc.Text()
	path := m.path
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return StatusMsg("save failed: " + err.Error())
		}
		return StatusMsg("saved " + path)
	}
}

// MarkClean clears the dirty flag after a successful save.
func (m *Model) MarkClean() { m.dirty = false }

// View renders the visible lines with highlighting applied.
func (m Model) View() string {
	doc := m.session.Document(m.docID)
	if doc == nil || m.width <= 0 || m.height <= 0 {
		return ""
	}
	store := m.session.Store(m.docID)

	gutterW := len(strconv.Itoa(doc.LineCount())) + 1
	textW := m.width - gutterW
	if textW < 1 {
		textW = 1
	}

	var b strings.Builder
	for i := 0; i < m.height; i++ {
		line := m.top + i
		if i > 0 {
			b.WriteByte('\n')
		}
		if line >= doc.LineCount() {
			b.WriteString(styles.Gutter.Render(strings.Repeat(" ", gutterW-1) + "~"))
			continue
		}
		num := fmt.Sprintf("%*d ", gutterW-1, line+1)
		b.WriteString(styles.Gutter.Render(num))
		b.WriteString(m.renderLine(doc.Line(line), line, store, textW))
	}

	if m.gotoActive {
		prompt := styles.Message.Render("go to line: ") + m.gotoInput.View()
		lines := strings.SplitN(b.String(), "\n", 2)
		if len(lines) == 2 {
			return prompt + "\n" + lines[1]
		}
		return prompt
	}
	return b.String()
}

// renderLine styles one line's runes by walking its spans in order. Runs
// of runes under the same tag are grouped to keep the escape-sequence
// count down; the cursor cell is drawn inverted.
func (m Model) renderLine(text string, line int, store *highlight.Store, width int) string {
	doc := m.session.Document(m.docID)
	start, _ := doc.LineSpan(line)
	runes := []rune(text)

	// Keep the cursor on screen for long lines.
	left := 0
	if line == m.row && m.col >= width {
		left = m.col - width + 1
	}

	var spans []highlight.Span
	if store != nil {
		spans = store.InRange(start, start+len(runes))
	}

	cursorAt := -1
	if line == m.row {
		cursorAt = m.col
	}

	var b strings.Builder
	si := 0
	run := func(tag string, from, to int) {
		if from >= to {
			return
		}
		seg := strings.ReplaceAll(string(runes[from:to]), "\t", strings.Repeat(" ", m.tabWidth))
		b.WriteString(m.cat.Render(tag, seg))
	}
	i := left
	segStart := left
	segTag := ""
	for ; i < len(runes); i++ {
		abs := start + i
		for si < len(spans) && spans[si].End <= abs {
			si++
		}
		tag := ""
		if si < len(spans) && spans[si].Start <= abs {
			tag = spans[si].Tag
		}
		if i == cursorAt {
			run(segTag, segStart, i)
			cell := string(runes[i])
			if cell == "\t" {
				cell = " "
			}
			b.WriteString(styles.CursorCell.Render(cell))
			segStart = i + 1
			segTag = tag
			continue
		}
		if tag != segTag {
			run(segTag, segStart, i)
			segStart = i
			segTag = tag
		}
	}
	run(segTag, segStart, len(runes))

	if cursorAt == len(runes) {
		b.WriteString(styles.CursorCell.Render(" "))
	}
	return truncate.String(b.String(), uint(width))
}

func lineLen(s string) int { return len([]rune(s)) }
