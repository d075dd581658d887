package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slatepad/slate/internal/document"
	"github.com/slatepad/slate/internal/syntax"
)

func newPythonHighlighter(t *testing.T, text string) *Highlighter {
	t.Helper()
	set, err := syntax.Compile("Python")
	require.NoError(t, err)
	doc := document.New("doc-1", "Python", text)
	return New(set, doc, NewStore())
}

func TestHighlighter_KeywordAndFunction(t *testing.T) {
	h := newPythonHighlighter(t, "def foo():\n    pass\n")
	h.HighlightDocument()

	store := h.Store()
	require.Equal(t, "keyword", store.TagAt(0)) // def
	require.Equal(t, "function", store.TagAt(4)) // foo
	require.Equal(t, "keyword", store.TagAt(15)) // pass
}

func TestHighlighter_CommentWinsOverKeyword(t *testing.T) {
	// The keyword rule matches "def" inside the comment, but the comment
	// rule applies later and takes the range.
	h := newPythonHighlighter(t, "# def foo\n")
	h.HighlightDocument()

	store := h.Store()
	for i := 0; i < 9; i++ {
		require.Equal(t, "comment", store.TagAt(i), "offset %d", i)
	}
	require.Empty(t, store.Spans("keyword"))
}

func TestHighlighter_StringSwallowsKeyword(t *testing.T) {
	h := newPythonHighlighter(t, `x = "if True"`)
	h.HighlightDocument()

	store := h.Store()
	require.Equal(t, "string", store.TagAt(5))
	require.Equal(t, "string", store.TagAt(8)) // the "if" inside
	require.Empty(t, store.Spans("keyword"))
}

func TestHighlighter_Idempotent(t *testing.T) {
	h := newPythonHighlighter(t, "def foo():\n    return 42  # done\n")
	h.HighlightDocument()
	first := h.Store().All()

	h.HighlightDocument()
	second := h.Store().All()

	require.Equal(t, first, second)
}

func TestHighlighter_RangePassLeavesOutsideAlone(t *testing.T) {
	text := "def one():\n    pass\ndef two():\n    pass\n"
	h := newPythonHighlighter(t, text)
	h.HighlightDocument()
	before := h.Store().All()

	// Re-pass only the second function; nothing outside may change.
	h.HighlightRange(20, len([]rune(text)))

	require.Equal(t, before, h.Store().All())
}

func TestHighlighter_LinePass(t *testing.T) {
	h := newPythonHighlighter(t, "x = 1\ny = 2\n")
	h.HighlightLine(1)

	store := h.Store()
	require.Equal(t, "number", store.TagAt(10)) // the 2
	require.Empty(t, store.InRange(0, 5))       // line 0 untouched
}

func TestHighlighter_ViewportPass(t *testing.T) {
	text := "a = 1\nb = 2\nc = 3\nd = 4\n"
	h := newPythonHighlighter(t, text)
	h.HighlightViewport(1, 2)

	store := h.Store()
	require.Empty(t, store.InRange(0, 5), "line 0 outside viewport")
	require.Equal(t, "number", store.TagAt(10))
	require.Equal(t, "number", store.TagAt(16))
	require.Empty(t, store.InRange(18, 23), "line 3 outside viewport")
}

func TestHighlighter_NilPatternSetNoOp(t *testing.T) {
	doc := document.New("doc-1", "Plain Text", "def foo(): pass")
	h := New(nil, doc, NewStore())
	h.HighlightDocument()
	require.Equal(t, 0, h.Store().Count())
}

func TestHighlighter_EditThenRepass(t *testing.T) {
	set, err := syntax.Compile("Python")
	require.NoError(t, err)
	doc := document.New("doc-1", "Python", "x = 1\n")
	h := New(set, doc, NewStore())
	h.HighlightDocument()
	require.Equal(t, "number", h.Store().TagAt(4))

	// Comment out the line; the pass after the edit restyles it.
	doc.Insert(0, "# ")
	h.HighlightLine(0)

	require.Equal(t, "comment", h.Store().TagAt(0))
	require.Equal(t, "comment", h.Store().TagAt(6))
	require.Empty(t, h.Store().Spans("number"))
}

func TestHighlighter_ClampsRange(t *testing.T) {
	h := newPythonHighlighter(t, "pass")
	h.HighlightRange(-5, 999)
	require.Equal(t, "keyword", h.Store().TagAt(0))
}
