// Package editor ties the buffers, registry, highlighters and schedulers
// together behind the surface the UI talks to.
package editor

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/slatepad/slate/internal/config"
	"github.com/slatepad/slate/internal/dispatch"
	"github.com/slatepad/slate/internal/document"
	"github.com/slatepad/slate/internal/highlight"
	"github.com/slatepad/slate/internal/log"
	"github.com/slatepad/slate/internal/pubsub"
	"github.com/slatepad/slate/internal/sched"
	"github.com/slatepad/slate/internal/syntax"
	"github.com/slatepad/slate/internal/tracing"
)

// Debounce purposes. Keys are "<document id>:<purpose>" so the two tiers
// never starve each other and teardown can cancel by prefix.
const (
	purposeRefresh   = "refresh"
	purposeHighlight = "highlight"
)

// openDoc bundles the per-document state the session owns.
type openDoc struct {
	doc   *document.Document
	hl    *highlight.Highlighter
	store *highlight.Store

	firstLine   int
	lastLine    int
	hasViewport bool
}

// Session owns every open document and the machinery around them. All
// methods must be called from the owning loop; the only concurrency inside
// is the dispatch bridge and the debounce timers, both of which deliver
// back onto that loop.
type Session struct {
	cfg    config.EditorConfig
	bridge *dispatch.Bridge
	deb    *sched.Debouncer
	sets   *gocache.Cache
	broker *pubsub.Broker[pubsub.DocumentEvent]
	tracer trace.Tracer

	docs map[string]*openDoc
}

// New creates a session. tracer may be nil.
func New(cfg config.EditorConfig, tracer trace.Tracer) *Session {
	bridge := dispatch.NewBridge()
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &Session{
		cfg:    cfg,
		bridge: bridge,
		deb:    sched.New(bridge),
		sets:   gocache.New(gocache.NoExpiration, 0),
		broker: pubsub.NewBroker[pubsub.DocumentEvent](),
		tracer: tracer,
		docs:   make(map[string]*openDoc),
	}
}

// Bridge returns the dispatch bridge the owning loop must drain.
func (s *Session) Bridge() *dispatch.Bridge { return s.bridge }

// Broker returns the document event broker.
func (s *Session) Broker() *pubsub.Broker[pubsub.DocumentEvent] { return s.broker }

// Debouncer exposes the scheduler, mainly for tests.
func (s *Session) Debouncer() *sched.Debouncer { return s.deb }

// Document returns an open document, or nil.
func (s *Session) Document(id string) *document.Document {
	if d, ok := s.docs[id]; ok {
		return d.doc
	}
	return nil
}

// Store returns an open document's span store, or nil.
func (s *Session) Store(id string) *highlight.Store {
	if d, ok := s.docs[id]; ok {
		return d.store
	}
	return nil
}

// OpenDocument creates a document, binds a highlighter to it and runs the
// initial pass. An empty id gets a generated one; the returned document
// carries it.
func (s *Session) OpenDocument(id, language, content string) (*document.Document, error) {
	if id != "" {
		if _, exists := s.docs[id]; exists {
			return nil, fmt.Errorf("document %s already open", id)
		}
	}

	doc := document.New(id, language, content,
		document.WithLargeThreshold(s.cfg.LargeFileThreshold))
	store := highlight.NewStore()
	hl := highlight.New(s.patternSet(language), doc, store)
	hl.SetViewportMode(s.viewportOn(doc))

	d := &openDoc{doc: doc, hl: hl, store: store}
	s.docs[doc.ID()] = d

	// Large documents wait for the first viewport notification; a full
	// pass here would defeat the point of large-file mode.
	if !hl.ViewportMode() {
		s.runPass(d, "full", func() { hl.HighlightDocument() })
	}

	s.publish(pubsub.DocOpenedEvent, doc)
	log.Info(log.CatDoc, "document opened",
		"id", doc.ID(), "language", language, "chars", doc.Len())
	return doc, nil
}

// CloseDocument tears down a document: every pending debounce timer under
// its keys is cancelled so nothing fires against a dead buffer, and its
// span store is dropped with it.
func (s *Session) CloseDocument(id string) {
	d, ok := s.docs[id]
	if !ok {
		return
	}
	s.deb.CancelPrefix(id + ":")
	delete(s.docs, id)
	s.publish(pubsub.DocClosedEvent, d.doc)
	log.Info(log.CatDoc, "document closed", "id", id)
}

// OnEdit schedules the two debounce tiers for an edited document: a short
// one for light UI refresh and a longer one for the highlight pass. Bursts
// of keystrokes collapse into one of each.
func (s *Session) OnEdit(id string, edit document.Edit) {
	d, ok := s.docs[id]
	if !ok {
		return
	}

	d.hl.SetViewportMode(s.viewportOn(d.doc))

	s.deb.Schedule(key(id, purposeRefresh), s.refreshDelay(), func() {
		if cur, ok := s.docs[id]; ok {
			s.publish(pubsub.DocEditedEvent, cur.doc)
		}
	})

	s.deb.Schedule(key(id, purposeHighlight), s.highlightDelay(), func() {
		cur, ok := s.docs[id]
		if !ok {
			return // closed while the timer was pending
		}
		s.highlightAfterEdit(cur, edit)
	})
}

// OnViewportChanged records the visible line range. In viewport mode this
// also schedules a pass, under the same key as edit-driven highlighting so
// scroll bursts and typing coalesce together.
func (s *Session) OnViewportChanged(id string, firstLine, lastLine int) {
	d, ok := s.docs[id]
	if !ok {
		return
	}
	changed := !d.hasViewport || d.firstLine != firstLine || d.lastLine != lastLine
	d.firstLine, d.lastLine = firstLine, lastLine
	d.hasViewport = true

	if !d.hl.ViewportMode() || !changed {
		return
	}
	s.deb.Schedule(key(id, purposeHighlight), s.highlightDelay(), func() {
		cur, ok := s.docs[id]
		if !ok {
			return
		}
		s.runPass(cur, "viewport", func() {
			cur.hl.HighlightViewport(cur.firstLine, cur.lastLine)
		})
	})
}

// SetLanguage switches a document's highlighting language and reruns the
// appropriate pass.
func (s *Session) SetLanguage(id, language string) {
	d, ok := s.docs[id]
	if !ok {
		return
	}
	d.doc.SetLanguage(language)
	d.store.Clear()
	d.hl.SetPatternSet(s.patternSet(language))
	s.rehighlight(d)
}

// ReloadConfig applies new editor settings and recompiles every language in
// use. Called when the config watcher fires.
func (s *Session) ReloadConfig(cfg config.EditorConfig) {
	s.cfg = cfg
	s.sets.Flush()
	for _, d := range s.docs {
		d.hl.SetPatternSet(s.patternSet(d.doc.Language()))
		d.hl.SetViewportMode(s.viewportOn(d.doc))
		s.rehighlight(d)
	}
	log.Info(log.CatConfig, "editor settings reloaded")
}

// Close cancels all pending work and shuts the event broker.
func (s *Session) Close() {
	s.deb.CancelAll()
	s.broker.Close()
}

func (s *Session) rehighlight(d *openDoc) {
	if d.hl.ViewportMode() {
		if d.hasViewport {
			s.runPass(d, "viewport", func() { d.hl.HighlightViewport(d.firstLine, d.lastLine) })
		}
		return
	}
	s.runPass(d, "full", func() { d.hl.HighlightDocument() })
}

// highlightAfterEdit picks the cheapest safe pass for an edit: viewport
// when large, a single line when the edit stayed inside one line, a full
// pass when it may have opened or closed a multi-line construct.
func (s *Session) highlightAfterEdit(d *openDoc, edit document.Edit) {
	switch {
	case d.hl.ViewportMode():
		if d.hasViewport {
			s.runPass(d, "viewport", func() { d.hl.HighlightViewport(d.firstLine, d.lastLine) })
		}
	case edit.LineOnly:
		s.runPass(d, "line", func() { d.hl.HighlightLine(edit.Line) })
	default:
		s.runPass(d, "full", func() { d.hl.HighlightDocument() })
	}
}

func (s *Session) runPass(d *openDoc, kind string, pass func()) {
	_, span := tracing.Pass(context.Background(), s.tracer, kind, d.doc.ID(), 0, d.doc.Len())
	started := time.Now()
	pass()
	span.End()
	log.Debug(log.CatHL, "pass complete",
		"doc", d.doc.ID(), "kind", kind, "spans", d.store.Count(),
		"took", time.Since(started))
	s.publish(pubsub.DocHighlightedEvent, d.doc)
}

// patternSet returns the compiled set for a language, caching compiles
// across documents. Unknown languages (plain text) yield nil.
func (s *Session) patternSet(language string) *syntax.PatternSet {
	if cached, ok := s.sets.Get(language); ok {
		return cached.(*syntax.PatternSet)
	}
	set, err := syntax.Compile(language)
	if err != nil {
		log.Debug(log.CatSyntax, "no pattern set", "language", language, "error", err)
		return nil
	}
	s.sets.Set(language, set, gocache.NoExpiration)
	return set
}

// viewportOn decides whether a document gets viewport-only passes: forced
// by config, or automatic once the content crosses the threshold.
func (s *Session) viewportOn(doc *document.Document) bool {
	switch s.cfg.LargeFileMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return doc.IsLarge()
	}
}

func (s *Session) refreshDelay() time.Duration {
	return msOrDefault(s.cfg.RefreshDebounceMs, 200)
}

func (s *Session) highlightDelay() time.Duration {
	return msOrDefault(s.cfg.HighlightDebounceMs, 250)
}

func (s *Session) publish(t pubsub.EventType, doc *document.Document) {
	s.broker.Publish(t, pubsub.DocumentEvent{
		ID:       doc.ID(),
		Language: doc.Language(),
		Version:  doc.Version(),
	})
}

func key(id, purpose string) string {
	return id + ":" + purpose
}

func msOrDefault(ms, def int) time.Duration {
	if ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}
