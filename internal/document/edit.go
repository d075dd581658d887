package document

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Edit describes one mutation of a document, in rune offsets.
// Start/OldEnd cover the replaced range in the pre-edit content; NewEnd is
// the end of the inserted text in the post-edit content.
type Edit struct {
	Start  int
	OldEnd int
	NewEnd int

	// Line is the zero-based line containing Start after the edit.
	Line int

	// LineOnly is true when neither the removed nor the inserted text
	// contains a newline, so a single-line highlight pass is safe to use
	// for feedback. It says nothing about multi-line constructs that may
	// enclose the line; see Highlighter.HighlightLine.
	LineOnly bool
}

// SetText replaces the whole content, diffing old against new to locate the
// changed region so callers can still route small whole-buffer updates
// (paste of a word, external file touch) to a cheap pass.
func (d *Document) SetText(text string) Edit {
	old := string(d.content)
	if old == text {
		line, _ := d.PositionAt(0)
		return Edit{Start: 0, OldEnd: 0, NewEnd: 0, Line: line, LineOnly: true}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, text, false)

	start, oldEnd, newEnd, structural := changedRegion(diffs)

	d.content = []rune(text)
	d.mutated()

	line, _ := d.PositionAt(min(start, len(d.content)))
	lineOnly := !structural && d.LineAt(start) == d.LineAt(newEnd)
	return Edit{Start: start, OldEnd: oldEnd, NewEnd: newEnd, Line: line, LineOnly: lineOnly}
}

// changedRegion reduces a diff to a single replaced range: rune offsets of
// the first and last differing segments in old and new coordinates.
func changedRegion(diffs []diffmatchpatch.Diff) (start, oldEnd, newEnd int, structural bool) {
	oldPos, newPos := 0, 0
	start = -1
	oldEnd, newEnd = 0, 0

	for _, diff := range diffs {
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			oldPos += n
			newPos += n
		case diffmatchpatch.DiffDelete:
			if start < 0 {
				start = oldPos
			}
			oldPos += n
			oldEnd = oldPos
			newEnd = newPos
			if strings.ContainsRune(diff.Text, '\n') {
				structural = true
			}
		case diffmatchpatch.DiffInsert:
			if start < 0 {
				start = newPos
			}
			newPos += n
			newEnd = newPos
			if oldPos > oldEnd {
				oldEnd = oldPos
			}
			if strings.ContainsRune(diff.Text, '\n') {
				structural = true
			}
		}
	}
	if start < 0 {
		start, oldEnd, newEnd = 0, 0, 0
	}
	if oldEnd < start {
		oldEnd = start
	}
	if newEnd < start {
		newEnd = start
	}
	return start, oldEnd, newEnd, structural
}
