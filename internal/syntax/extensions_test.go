package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLanguageForExtension(t *testing.T) {
	require.Equal(t, "Python", LanguageForExtension(".py"))
	require.Equal(t, "Python", LanguageForExtension(".PY"))
	require.Equal(t, "Go", LanguageForExtension(".go"))
	require.Equal(t, "C++", LanguageForExtension(".hpp"))
	require.Equal(t, PlainText, LanguageForExtension(".xyz"))
	require.Equal(t, PlainText, LanguageForExtension(""))
}

func TestLanguageForPath(t *testing.T) {
	require.Equal(t, "Markdown", LanguageForPath("/docs/README.md"))
	require.Equal(t, "TypeScript", LanguageForPath("src/app.tsx"))
	require.Equal(t, PlainText, LanguageForPath("Makefile"))
}

func TestEveryMappedLanguageHasRules(t *testing.T) {
	for ext, lang := range extLanguages {
		require.True(t, Known(lang), "extension %s maps to unknown language %s", ext, lang)
	}
}
