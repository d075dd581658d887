package syntax

// styleTags maps rule names to the style tags the renderer's catalogue
// knows. Most rule names are plural collection names and map to a singular
// tag; a few are kept as-is where stripping a suffix would produce a
// malformed or colliding tag name. This is a hand-authored table on
// purpose: deriving it from string suffixes at runtime invites collisions.
var styleTags = map[string]string{
	"keywords":     "keyword",
	"builtins":     "builtin",
	"functions":    "function",
	"classes":      "class",
	"decorators":   "decorator",
	"annotations":  "annotation",
	"macros":       "macro",
	"operators":    "operator",
	"numbers":      "number",
	"variables":    "variable",
	"lifetimes":    "lifetime",
	"types":        "type",
	"tags":         "tag",
	"attributes":   "attribute",
	"selectors":    "selector",
	"properties":   "property",
	"values":       "value",
	"keys":         "key",
	"constants":    "constant",
	"headers":      "header",
	"links":        "link",
	"lists":        "list",
	"entities":     "entity",
	"strings":      "string",
	"comments":     "comment",
	"preprocessor": "preprocessor",
	"bold":         "bold",
	"italic":       "italic",
	"code":         "code",
}

// TagFor returns the style tag for a rule name. Rule names missing from
// the table map to themselves.
func TagFor(ruleName string) string {
	if tag, ok := styleTags[ruleName]; ok {
		return tag
	}
	return ruleName
}
