package syntax

// languages holds the per-language rule tables. Slice order is application
// order; keep string and comment rules at the end of every table.
var languages = map[string][]Rule{
	"Python": {
		{Name: "keywords", Pattern: `\b(def|class|if|elif|else|for|while|try|except|finally|with|as|import|from|return|yield|break|continue|pass|raise|and|or|not|in|is|lambda|global|nonlocal|async|await|True|False|None|self)\b`},
		{Name: "functions", Pattern: `\b([a-zA-Z_]\w*)\s*(?=\()`},
		{Name: "decorators", Pattern: `@\w+`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*\b`},
		{Name: "strings", Pattern: `("""[\s\S]*?"""|'''[\s\S]*?'''|f"[^"\\]*(?:\\.[^"\\]*)*"|f'[^'\\]*(?:\\.[^'\\]*)*'|"[^"\\]*(?:\\.[^"\\]*)*"|'[^'\\]*(?:\\.[^'\\]*)*')`},
		{Name: "comments", Pattern: `#.*$`},
	},
	"JavaScript": {
		{Name: "keywords", Pattern: `\b(const|let|var|function|return|if|else|for|while|do|switch|case|break|continue|new|this|class|extends|super|import|export|default|from|async|await|try|catch|finally|throw|typeof|instanceof|in|of|null|undefined|true|false)\b`},
		{Name: "functions", Pattern: `\b([a-zA-Z_$]\w*)\s*(?=\()`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*\b`},
		{Name: "strings", Pattern: "(`[^`]*`|\"[^\"\\\\]*(?:\\\\.[^\"\\\\]*)*\"|'[^'\\\\]*(?:\\\\.[^'\\\\]*)*')"},
		{Name: "comments", Pattern: `(//.*$|/\*[\s\S]*?\*/)`},
	},
	"TypeScript": {
		{Name: "keywords", Pattern: `\b(const|let|var|function|return|if|else|for|while|do|switch|case|break|continue|new|this|class|extends|super|import|export|default|from|async|await|try|catch|finally|throw|typeof|instanceof|in|of|null|undefined|true|false|interface|type|enum|implements|public|private|protected|readonly|static|abstract|as|is|keyof|never|unknown|any|void|string|number|boolean|symbol|bigint)\b`},
		{Name: "functions", Pattern: `\b([a-zA-Z_$]\w*)\s*(?=\()`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*\b`},
		{Name: "strings", Pattern: "(`[^`]*`|\"[^\"\\\\]*(?:\\\\.[^\"\\\\]*)*\"|'[^'\\\\]*(?:\\\\.[^'\\\\]*)*')"},
		{Name: "comments", Pattern: `(//.*$|/\*[\s\S]*?\*/)`},
	},
	"Go": {
		{Name: "keywords", Pattern: `\b(break|case|chan|const|continue|default|defer|else|fallthrough|for|func|go|goto|if|import|interface|map|package|range|return|select|struct|switch|type|var|nil|true|false|iota)\b`},
		{Name: "functions", Pattern: `\b([a-zA-Z_]\w*)\s*(?=\()`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*\b`},
		{Name: "strings", Pattern: "(`[^`]*`|\"[^\"\\\\]*(?:\\\\.[^\"\\\\]*)*\")"},
		{Name: "comments", Pattern: `(//.*$|/\*[\s\S]*?\*/)`},
	},
	"C": {
		{Name: "preprocessor", Pattern: `#\s*\w+`},
		{Name: "keywords", Pattern: `\b(auto|break|case|char|const|continue|default|do|double|else|enum|extern|float|for|goto|if|int|long|register|return|short|signed|sizeof|static|struct|switch|typedef|union|unsigned|void|volatile|while|NULL)\b`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*[fFlLuU]*\b`},
		{Name: "strings", Pattern: `"[^"\\]*(?:\\.[^"\\]*)*"`},
		{Name: "comments", Pattern: `(//.*$|/\*[\s\S]*?\*/)`},
	},
	"C++": {
		{Name: "preprocessor", Pattern: `#\s*\w+`},
		{Name: "keywords", Pattern: `\b(alignas|alignof|and|and_eq|asm|auto|bitand|bitor|bool|break|case|catch|char|char16_t|char32_t|class|compl|const|constexpr|const_cast|continue|decltype|default|delete|do|double|dynamic_cast|else|enum|explicit|export|extern|false|float|for|friend|goto|if|inline|int|long|mutable|namespace|new|noexcept|not|not_eq|nullptr|operator|or|or_eq|private|protected|public|register|reinterpret_cast|return|short|signed|sizeof|static|static_assert|static_cast|struct|switch|template|this|thread_local|throw|true|try|typedef|typeid|typename|union|unsigned|using|virtual|void|volatile|wchar_t|while|xor|xor_eq)\b`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*[fFlLuU]*\b`},
		{Name: "strings", Pattern: `"[^"\\]*(?:\\.[^"\\]*)*"`},
		{Name: "comments", Pattern: `(//.*$|/\*[\s\S]*?\*/)`},
	},
	"Java": {
		{Name: "keywords", Pattern: `\b(abstract|assert|boolean|break|byte|case|catch|char|class|const|continue|default|do|double|else|enum|extends|final|finally|float|for|goto|if|implements|import|instanceof|int|interface|long|native|new|null|package|private|protected|public|return|short|static|strictfp|super|switch|synchronized|this|throw|throws|transient|try|void|volatile|while|true|false)\b`},
		{Name: "annotations", Pattern: `@\w+`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*[fFdDlL]?\b`},
		{Name: "strings", Pattern: `"[^"\\]*(?:\\.[^"\\]*)*"`},
		{Name: "comments", Pattern: `(//.*$|/\*[\s\S]*?\*/)`},
	},
	"Rust": {
		{Name: "keywords", Pattern: `\b(as|async|await|break|const|continue|crate|dyn|else|enum|extern|false|fn|for|if|impl|in|let|loop|match|mod|move|mut|pub|ref|return|self|Self|static|struct|super|trait|true|type|unsafe|use|where|while)\b`},
		{Name: "macros", Pattern: `\w+!`},
		{Name: "lifetimes", Pattern: `'\w+`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*([fiu](8|16|32|64|128|size))?\b`},
		{Name: "strings", Pattern: `(r#*"[^"]*"#*|"[^"\\]*(?:\\.[^"\\]*)*")`},
		{Name: "comments", Pattern: `(//.*$|/\*[\s\S]*?\*/)`},
	},
	// SQL is the one case-insensitive family: keyword, builtin and constant
	// matching ignores case; everything else is exact.
	"SQL": {
		{Name: "keywords", Pattern: `\b(SELECT|FROM|WHERE|INSERT|UPDATE|DELETE|CREATE|DROP|ALTER|TABLE|INDEX|VIEW|JOIN|LEFT|RIGHT|INNER|OUTER|ON|AND|OR|NOT|IN|IS|AS|ORDER|BY|GROUP|HAVING|LIMIT|OFFSET|UNION|ALL|DISTINCT|CASE|WHEN|THEN|ELSE|END|PRIMARY|KEY|FOREIGN|REFERENCES|CONSTRAINT|DEFAULT|AUTO_INCREMENT|INT|VARCHAR|TEXT|BOOLEAN|DATE|DATETIME|TIMESTAMP|FLOAT|DOUBLE|DECIMAL)\b`, IgnoreCase: true},
		{Name: "builtins", Pattern: `\b(COUNT|SUM|AVG|MAX|MIN|COALESCE|NULLIF|CAST|SUBSTRING|TRIM|UPPER|LOWER|LENGTH|ROUND|ABS|NOW)\b`, IgnoreCase: true},
		{Name: "constants", Pattern: `\b(NULL|TRUE|FALSE)\b`, IgnoreCase: true},
		{Name: "numbers", Pattern: `\b\d+\.?\d*\b`},
		{Name: "strings", Pattern: `'[^']*'`},
		{Name: "comments", Pattern: `(--.*$|/\*[\s\S]*?\*/)`},
	},
	"Shell": {
		{Name: "keywords", Pattern: `\b(if|then|else|elif|fi|for|while|do|done|case|esac|function|return|exit|echo|read|export|source|alias|cd|pwd|ls|mkdir|rm|cp|mv|cat|grep|sed|awk|find|xargs|sudo|chmod|chown)\b`},
		{Name: "variables", Pattern: `\$[a-zA-Z_]\w*|\$\{[^}]+\}`},
		{Name: "numbers", Pattern: `\b\d+\b`},
		{Name: "strings", Pattern: `("([^"\\]|\\.)*"|'[^']*')`},
		{Name: "comments", Pattern: `#.*$`},
	},
	"PowerShell": {
		{Name: "keywords", Pattern: `\b(if|else|elseif|switch|foreach|for|while|do|until|break|continue|return|function|param|begin|process|end|try|catch|finally|throw|trap|exit|Write-Host|Write-Output|Where-Object|ForEach-Object|Sort-Object|Group-Object)\b`},
		{Name: "variables", Pattern: `\$[a-zA-Z_]\w*`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*\b`},
		{Name: "strings", Pattern: `("([^"\\]|\\.)*"|'[^']*'|@"[\s\S]*?"@|@'[\s\S]*?'@)`},
		{Name: "comments", Pattern: `(#.*$|<#[\s\S]*?#>)`},
	},
	"HTML": {
		{Name: "tags", Pattern: `</?[a-zA-Z][a-zA-Z0-9]*`},
		{Name: "attributes", Pattern: `\b([a-zA-Z-]+)=`},
		{Name: "strings", Pattern: `"[^"]*"|'[^']*'`},
		{Name: "comments", Pattern: `<!--[\s\S]*?-->`},
	},
	"CSS": {
		{Name: "selectors", Pattern: `[.#]?[a-zA-Z_-][\w-]*(?=\s*[{,])`},
		{Name: "properties", Pattern: `\b([a-zA-Z-]+)\s*:`},
		{Name: "values", Pattern: `:\s*([^;{}]+)`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*(px|em|rem|%|vh|vw|pt|cm|mm|in)?\b`},
		{Name: "comments", Pattern: `/\*[\s\S]*?\*/`},
	},
	"JSON": {
		{Name: "keys", Pattern: `"[^"]*"\s*(?=:)`},
		{Name: "constants", Pattern: `\b(true|false|null)\b`},
		{Name: "numbers", Pattern: `\b-?\d+\.?\d*([eE][+-]?\d+)?\b`},
		{Name: "strings", Pattern: `"[^"\\]*(?:\\.[^"\\]*)*"`},
	},
	"YAML": {
		{Name: "keys", Pattern: `^[\s]*[a-zA-Z_][a-zA-Z0-9_-]*(?=\s*:)`},
		{Name: "constants", Pattern: `\b(true|false|null|yes|no|on|off)\b`},
		{Name: "numbers", Pattern: `\b\d+\.?\d*\b`},
		{Name: "strings", Pattern: `"[^"]*"|'[^']*'`},
		{Name: "comments", Pattern: `#.*$`},
	},
	"Markdown": {
		{Name: "headers", Pattern: `^#{1,6}\s+.*$`},
		{Name: "bold", Pattern: `\*\*[^*]+\*\*|__[^_]+__`},
		{Name: "italic", Pattern: `\*[^*]+\*|_[^_]+_`},
		{Name: "links", Pattern: `\[[^\]]+\]\([^)]+\)`},
		{Name: "lists", Pattern: `^[\s]*[-*+]\s+`},
		{Name: "code", Pattern: "`[^`]+`"},
	},
}
