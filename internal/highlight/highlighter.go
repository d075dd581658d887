package highlight

import (
	"github.com/slatepad/slate/internal/document"
	"github.com/slatepad/slate/internal/log"
	"github.com/slatepad/slate/internal/syntax"
)

// Highlighter binds one compiled pattern set to one document and its span
// store. One instance exists per open document.
type Highlighter struct {
	set   *syntax.PatternSet
	doc   *document.Document
	store *Store

	viewportMode bool
}

// New creates a highlighter. set may be nil for plain-text documents, in
// which case every pass is a no-op.
func New(set *syntax.PatternSet, doc *document.Document, store *Store) *Highlighter {
	return &Highlighter{set: set, doc: doc, store: store}
}

// Store returns the span store the highlighter writes into.
func (h *Highlighter) Store() *Store { return h.store }

// SetPatternSet swaps the pattern set (language change, registry reload).
// The caller should follow with a full pass.
func (h *Highlighter) SetPatternSet(set *syntax.PatternSet) { h.set = set }

// SetViewportMode restricts subsequent scheduled passes to the viewport.
// Flipped on when the document crosses the large-file threshold.
func (h *Highlighter) SetViewportMode(on bool) { h.viewportMode = on }

// ViewportMode reports whether viewport-only passes are in effect.
func (h *Highlighter) ViewportMode() bool { return h.viewportMode }

// HighlightRange runs one pass over the rune range [start, end): clears the
// registry's tags inside the range, then applies each rule in precedence
// order, translating matches back to absolute offsets. A rule that fails at
// match time (for example a timeout on pathological input) only loses its
// own tag for this pass; the rest proceed.
func (h *Highlighter) HighlightRange(start, end int) {
	if h.set == nil {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > h.doc.Len() {
		end = h.doc.Len()
	}
	if start >= end {
		return
	}

	h.store.ClearRange(h.set.Order(), start, end)
	text := h.doc.Slice(start, end)

	for _, rule := range h.set.Rules() {
		ranges, err := rule.Ranges(text)
		if err != nil {
			log.Warn(log.CatHL, "tag skipped for this pass",
				"doc", h.doc.ID(), "tag", rule.Tag, "error", err)
			continue
		}
		for _, rg := range ranges {
			h.store.Add(rule.Tag, start+rg[0], start+rg[1])
		}
	}
}

// HighlightDocument runs a full pass. Used on open, and whenever an edit
// may have opened or closed a multi-line construct.
func (h *Highlighter) HighlightDocument() {
	h.HighlightRange(0, h.doc.Len())
}

// HighlightLine runs a pass over a single zero-based line. Cheap, used for
// keystroke-level feedback. Caveat: a single-line pass cannot tell whether
// the line sits inside a multi-line string or comment opened on an earlier
// line; the surrounding spans are left as the previous wider pass set them.
func (h *Highlighter) HighlightLine(line int) {
	start, end := h.doc.LineSpan(line)
	h.HighlightRange(start, end)
}

// HighlightViewport runs a pass over the inclusive visible line range. Used
// instead of full passes once the document is large, so per-pass cost is
// bounded by the window height rather than the document size. Re-invoke on
// every scroll or resize as well as after edits.
func (h *Highlighter) HighlightViewport(firstLine, lastLine int) {
	if lastLine < firstLine {
		firstLine, lastLine = lastLine, firstLine
	}
	start, _ := h.doc.LineSpan(firstLine)
	_, end := h.doc.LineSpan(lastLine)
	h.HighlightRange(start, end)
}
