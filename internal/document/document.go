// Package document provides the in-memory text buffer for open files.
//
// A Document is owned by the single goroutine running the Bubble Tea update
// loop; nothing else may touch it. That single-writer rule is what lets the
// buffer, its span store and the debounce timers run without locks — the
// dispatch bridge is the only structure shared across goroutines.
package document

import (
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/slatepad/slate/internal/log"
)

// DefaultLargeThreshold is the content size, in characters, above which a
// document enters large-file mode and highlighting is restricted to the
// visible viewport.
const DefaultLargeThreshold = 500000

// Document is one open text buffer. All offsets are rune offsets.
type Document struct {
	id         string
	language   string
	content    []rune
	lineStarts []int // rune offset of the first character of each line

	version  uint64 // xxhash64 of the content
	revision uint64 // bumped on every mutation
	isLarge  bool
	largeThreshold int
}

// Option configures a Document at construction.
type Option func(*Document)

// WithLargeThreshold overrides the large-file threshold. A value <= 0
// disables large-file mode entirely.
func WithLargeThreshold(n int) Option {
	return func(d *Document) { d.largeThreshold = n }
}

// New creates a document. An empty id gets a generated UUID.
func New(id, language, text string, opts ...Option) *Document {
	if id == "" {
		id = uuid.NewString()
	}
	d := &Document{
		id:             id,
		language:       language,
		content:        []rune(text),
		largeThreshold: DefaultLargeThreshold,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reindex()
	d.version = xxhash.Sum64String(text)
	if d.isLarge {
		log.Info(log.CatDoc, "document opened in large-file mode",
			"id", d.id, "chars", len(d.content))
	}
	return d
}

// ID returns the document's opaque identifier.
func (d *Document) ID() string { return d.id }

// Language returns the registry language name.
func (d *Document) Language() string { return d.language }

// SetLanguage changes the highlighting language.
func (d *Document) SetLanguage(language string) { d.language = language }

// Version returns the content hash. It changes whenever the content does.
func (d *Document) Version() uint64 { return d.version }

// Revision returns a counter bumped on every mutation.
func (d *Document) Revision() uint64 { return d.revision }

// IsLarge reports whether the document exceeds the large-file threshold.
func (d *Document) IsLarge() bool { return d.isLarge }

// Len returns the content length in runes.
func (d *Document) Len() int { return len(d.content) }

// Text returns the full content.
func (d *Document) Text() string { return string(d.content) }

// Slice returns the content between two rune offsets. Out-of-range bounds
// are clamped.
func (d *Document) Slice(start, end int) string {
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		start = end
	}
	return string(d.content[start:end])
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int { return len(d.lineStarts) }

// LineSpan returns the [start, end) rune offsets of a zero-based line,
// excluding the trailing newline. Out-of-range lines are clamped.
func (d *Document) LineSpan(line int) (int, int) {
	if line < 0 {
		line = 0
	}
	if line >= len(d.lineStarts) {
		line = len(d.lineStarts) - 1
	}
	start := d.lineStarts[line]
	end := len(d.content)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1] - 1 // exclude the newline
	}
	return start, end
}

// Line returns the text of a zero-based line without its newline.
func (d *Document) Line(line int) string {
	start, end := d.LineSpan(line)
	return string(d.content[start:end])
}

// LineAt returns the zero-based line containing the given rune offset.
func (d *Document) LineAt(offset int) int {
	offset = d.clamp(offset)
	// Binary search over line starts.
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// OffsetAt converts a (line, column) pair to a rune offset. The column is
// clamped to the line's length.
func (d *Document) OffsetAt(line, col int) int {
	start, end := d.LineSpan(line)
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

// PositionAt converts a rune offset to a (line, column) pair.
func (d *Document) PositionAt(offset int) (line, col int) {
	offset = d.clamp(offset)
	line = d.LineAt(offset)
	return line, offset - d.lineStarts[line]
}

// Replace splices text over the rune range [start, end) and returns the
// edit descriptor. Bounds are clamped.
func (d *Document) Replace(start, end int, text string) Edit {
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		start, end = end, start
	}

	removed := d.content[start:end]
	inserted := []rune(text)
	structural := containsNewline(removed) || containsNewline(inserted)

	next := make([]rune, 0, len(d.content)-len(removed)+len(inserted))
	next = append(next, d.content[:start]...)
	next = append(next, inserted...)
	next = append(next, d.content[end:]...)
	d.content = next
	d.mutated()

	line, _ := d.PositionAt(start)
	return Edit{
		Start:    start,
		OldEnd:   end,
		NewEnd:   start + len(inserted),
		Line:     line,
		LineOnly: !structural,
	}
}

// Insert inserts text at a rune offset.
func (d *Document) Insert(offset int, text string) Edit {
	return d.Replace(offset, offset, text)
}

// Delete removes the rune range [start, end).
func (d *Document) Delete(start, end int) Edit {
	return d.Replace(start, end, "")
}

func (d *Document) mutated() {
	d.reindex()
	d.version = xxhash.Sum64String(string(d.content))
	d.revision++
	wasLarge := d.isLarge
	d.checkLarge()
	if d.isLarge && !wasLarge {
		log.Info(log.CatDoc, "document crossed large-file threshold",
			"id", d.id, "chars", len(d.content))
	}
}

func (d *Document) reindex() {
	d.lineStarts = d.lineStarts[:0]
	d.lineStarts = append(d.lineStarts, 0)
	for i, r := range d.content {
		if r == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}

func (d *Document) checkLarge() {
	d.isLarge = d.largeThreshold > 0 && len(d.content) > d.largeThreshold
}

func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.content) {
		return len(d.content)
	}
	return offset
}

func containsNewline(rs []rune) bool {
	for _, r := range rs {
		if r == '\n' {
			return true
		}
	}
	return false
}
