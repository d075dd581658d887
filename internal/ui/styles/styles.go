// Package styles builds the style catalogue: the mapping from span tags to
// terminal styles. The catalogue is an explicit object handed to whoever
// renders — separate windows or test harnesses can carry independent
// catalogues, there is no global theme state.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/slatepad/slate/internal/config"
)

// Catalogue resolves span tags to lipgloss styles.
type Catalogue struct {
	styles map[string]lipgloss.Style
	plain  lipgloss.Style
}

// NewCatalogue builds a catalogue from theme colors. Tags missing from
// colors fall back to the default palette; unknown tags render plain.
func NewCatalogue(theme config.ThemeConfig) *Catalogue {
	colors := config.DefaultColors()
	for tag, hex := range theme.Colors {
		colors[tag] = hex
	}

	styles := make(map[string]lipgloss.Style, len(colors))
	for tag, hex := range colors {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		switch tag {
		case "header", "bold":
			st = st.Bold(true)
		case "italic":
			st = st.Italic(true)
		case "link":
			st = st.Underline(true)
		}
		styles[tag] = st
	}

	return &Catalogue{
		styles: styles,
		plain:  lipgloss.NewStyle(),
	}
}

// Style returns the style for a tag. The empty tag and unknown tags get
// the plain style.
func (c *Catalogue) Style(tag string) lipgloss.Style {
	if st, ok := c.styles[tag]; ok {
		return st
	}
	return c.plain
}

// Render styles text under a tag.
func (c *Catalogue) Render(tag, text string) string {
	return c.Style(tag).Render(text)
}

// Chrome styles for the editor frame.
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ABB2BF")).
			Background(lipgloss.Color("#2C313A"))

	StatusAccent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#61AFEF")).
			Background(lipgloss.Color("#2C313A")).
			Bold(true)

	Gutter = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4B5263"))

	CursorCell = lipgloss.NewStyle().Reverse(true)

	Message = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5C07B"))
)
