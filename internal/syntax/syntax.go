// Package syntax holds the per-language pattern registry used by the
// highlighter. A registry entry is an ordered list of named regex rules;
// the order is the overlap-resolution precedence: rules later in the list
// are applied after earlier ones, and the later-applied tag wins where
// matches overlap. String and comment rules are deliberately last so a
// keyword-looking substring inside a string or comment is not styled as a
// keyword.
package syntax

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/slatepad/slate/internal/log"
)

// ErrUnknownLanguage is returned by Compile for a language with no rules.
var ErrUnknownLanguage = errors.New("unknown language")

// matchTimeout bounds a single rule's matching time so one catastrophic
// pattern cannot stall a highlight pass.
const matchTimeout = 250 * time.Millisecond

// Rule is a single source pattern as authored in the language tables.
type Rule struct {
	// Name is the rule name from the language table (often a plural
	// collection name, e.g. "keywords").
	Name string

	// Pattern is the regex source. Compiled in multiline mode: ^ and $
	// anchor per line; rules that span lines (block comments, triple-quoted
	// strings) say so explicitly with [\s\S].
	Pattern string

	// IgnoreCase marks the rule case-insensitive. Only the SQL
	// keyword/builtin/constant family sets this.
	IgnoreCase bool
}

// CompiledRule is a rule ready for matching.
type CompiledRule struct {
	Name string
	Tag  string
	re   *regexp2.Regexp
}

// Ranges returns the rune-offset [start, end) ranges of every match of the
// rule in text. A match timeout or other runtime matching failure aborts
// this rule only; the ranges found so far are discarded and the error is
// returned so the caller can skip the tag for this pass.
func (r CompiledRule) Ranges(text string) ([][2]int, error) {
	var out [][2]int
	m, err := r.re.FindStringMatch(text)
	for m != nil && err == nil {
		out = append(out, [2]int{m.Index, m.Index + m.Length})
		m, err = r.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("matching rule %q: %w", r.Name, err)
	}
	return out, nil
}

// PatternSet is an immutable compiled registry entry for one language.
type PatternSet struct {
	Language string
	rules    []CompiledRule
	order    []string
}

// Compile builds the pattern set for a language. A rule whose pattern fails
// to compile is dropped with a logged diagnostic; the rest of the set is
// still usable. Returns ErrUnknownLanguage if no rules exist for language.
func Compile(language string) (*PatternSet, error) {
	rules, ok := languages[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}

	ps := &PatternSet{Language: language}
	for _, r := range rules {
		opts := regexp2.RegexOptions(regexp2.Multiline)
		if r.IgnoreCase {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(r.Pattern, opts)
		if err != nil {
			log.Warn(log.CatSyntax, "dropping rule with invalid pattern",
				"language", language, "rule", r.Name, "error", err)
			continue
		}
		re.MatchTimeout = matchTimeout
		ps.rules = append(ps.rules, CompiledRule{Name: r.Name, Tag: TagFor(r.Name), re: re})
		ps.order = append(ps.order, TagFor(r.Name))
	}
	return ps, nil
}

// Rules returns the compiled rules in application order.
func (ps *PatternSet) Rules() []CompiledRule {
	return ps.rules
}

// Order returns the tag names in application order. The highlighter clears
// exactly these tags before a pass, and the renderer resolves overlaps by
// this sequence.
func (ps *PatternSet) Order() []string {
	out := make([]string, len(ps.order))
	copy(out, ps.order)
	return out
}

// Languages returns the names of all registered languages.
func Languages() []string {
	out := make([]string, 0, len(languages))
	for name := range languages {
		out = append(out, name)
	}
	return out
}

// Known reports whether a language has registry rules.
func Known(language string) bool {
	_, ok := languages[language]
	return ok
}
