package syntax

import (
	"path/filepath"
	"strings"
)

// extLanguages maps file extensions to registry language names.
var extLanguages = map[string]string{
	".py": "Python", ".pyw": "Python", ".pyi": "Python",
	".js": "JavaScript", ".mjs": "JavaScript", ".cjs": "JavaScript", ".jsx": "JavaScript",
	".ts": "TypeScript", ".tsx": "TypeScript",
	".go": "Go",
	".c":  "C", ".h": "C",
	".cpp": "C++", ".hpp": "C++", ".cc": "C++", ".cxx": "C++",
	".java": "Java",
	".rs":   "Rust",
	".sql":  "SQL",
	".sh": "Shell", ".bash": "Shell", ".zsh": "Shell",
	".ps1": "PowerShell", ".psm1": "PowerShell", ".psd1": "PowerShell",
	".html": "HTML", ".htm": "HTML",
	".css": "CSS", ".scss": "CSS", ".sass": "CSS", ".less": "CSS",
	".json": "JSON", ".jsonc": "JSON",
	".yaml": "YAML", ".yml": "YAML",
	".md": "Markdown", ".markdown": "Markdown",
}

// PlainText is the language of documents with no highlighting rules.
const PlainText = "Plain Text"

// LanguageForExtension maps a file extension (with leading dot) to a
// language name, or PlainText when the extension is unknown.
func LanguageForExtension(ext string) string {
	if lang, ok := extLanguages[strings.ToLower(ext)]; ok {
		return lang
	}
	return PlainText
}

// LanguageForPath maps a file path to a language name by its extension.
func LanguageForPath(path string) string {
	return LanguageForExtension(filepath.Ext(path))
}
