// Package highlight derives style spans from document content using the
// pattern registry, and stores them for the renderer.
package highlight

import "sort"

// Span is a tagged character range over a document's content, in rune
// offsets.
type Span struct {
	Tag   string
	Start int
	End   int
}

// Store holds the style spans of one document. Spans never overlap: adding
// a span trims or removes whatever it covers, so the last-applied tag wins
// and the renderer can walk a line without resolving conflicts. Mutated
// only by the Highlighter, on the owning goroutine; no locking.
type Store struct {
	spans map[string][]Span // per tag, sorted by Start
}

// NewStore creates an empty span store.
func NewStore() *Store {
	return &Store{spans: make(map[string][]Span)}
}

// Add records a span. Existing spans of any tag overlapping [start, end)
// are trimmed to the uncovered remainder, or removed when fully covered.
// Adding an empty or inverted range is a no-op.
func (s *Store) Add(tag string, start, end int) {
	if start >= end {
		return
	}
	for t := range s.spans {
		s.carve(t, start, end)
	}
	s.insert(Span{Tag: tag, Start: start, End: end})
}

// ClearRange removes every span of each given tag lying fully inside
// [start, end). Spans straddling a boundary are left alone; a following
// pass over the straddled region re-resolves them.
func (s *Store) ClearRange(tags []string, start, end int) {
	for _, tag := range tags {
		spans := s.spans[tag]
		if len(spans) == 0 {
			continue
		}
		kept := spans[:0]
		for _, sp := range spans {
			if sp.Start >= start && sp.End <= end {
				continue
			}
			kept = append(kept, sp)
		}
		if len(kept) == 0 {
			delete(s.spans, tag)
		} else {
			s.spans[tag] = kept
		}
	}
}

// Clear drops every span.
func (s *Store) Clear() {
	s.spans = make(map[string][]Span)
}

// Spans returns the spans of one tag, sorted by start offset.
func (s *Store) Spans(tag string) []Span {
	out := make([]Span, len(s.spans[tag]))
	copy(out, s.spans[tag])
	return out
}

// All returns every span, sorted by start offset.
func (s *Store) All() []Span {
	var out []Span
	for _, spans := range s.spans {
		out = append(out, spans...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// InRange returns the spans overlapping [start, end), sorted by start
// offset. Spans are non-overlapping, so the result is a partition usable
// directly by a renderer.
func (s *Store) InRange(start, end int) []Span {
	var out []Span
	for _, spans := range s.spans {
		for _, sp := range spans {
			if sp.Start < end && sp.End > start {
				out = append(out, sp)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// TagAt returns the tag covering a rune offset, or "" if the offset is
// unstyled.
func (s *Store) TagAt(offset int) string {
	for tag, spans := range s.spans {
		i := sort.Search(len(spans), func(i int) bool { return spans[i].End > offset })
		if i < len(spans) && spans[i].Start <= offset {
			return tag
		}
	}
	return ""
}

// Count returns the total number of spans.
func (s *Store) Count() int {
	n := 0
	for _, spans := range s.spans {
		n += len(spans)
	}
	return n
}

// carve removes the [start, end) portion from every span of one tag,
// keeping uncovered remainders.
func (s *Store) carve(tag string, start, end int) {
	spans := s.spans[tag]
	if len(spans) == 0 {
		return
	}
	out := spans[:0]
	var extra []Span
	for _, sp := range spans {
		switch {
		case sp.End <= start || sp.Start >= end:
			out = append(out, sp)
		case sp.Start >= start && sp.End <= end:
			// fully covered, drop
		case sp.Start < start && sp.End > end:
			out = append(out, Span{Tag: tag, Start: sp.Start, End: start})
			extra = append(extra, Span{Tag: tag, Start: end, End: sp.End})
		case sp.Start < start:
			out = append(out, Span{Tag: tag, Start: sp.Start, End: start})
		default:
			extra = append(extra, Span{Tag: tag, Start: end, End: sp.End})
		}
	}
	out = append(out, extra...)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	if len(out) == 0 {
		delete(s.spans, tag)
	} else {
		s.spans[tag] = out
	}
}

// insert places a span in sorted position. An identical span cannot exist:
// Add carved the range out of every tag first.
func (s *Store) insert(sp Span) {
	spans := s.spans[sp.Tag]
	i := sort.Search(len(spans), func(i int) bool { return spans[i].Start >= sp.Start })
	spans = append(spans, Span{})
	copy(spans[i+1:], spans[i:])
	spans[i] = sp
	s.spans[sp.Tag] = spans
}
