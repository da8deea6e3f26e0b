// Package registry holds the fixed lookup tables of supported languages and
// display themes. The tables are loaded once and never mutated; validation and
// display-name resolution both read from them.
package registry

// Language describes a supported snippet language, keyed by its extension code.
type Language struct {
	Ext  string `json:"ext"`
	Name string `json:"name"`
	Mode string `json:"mode"`
}

// Theme describes a supported display theme, keyed by its value.
type Theme struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultTheme is applied when a snippet is created without a theme.
const DefaultTheme = "monokai"

var languages = []Language{
	{Ext: "c", Name: "C", Mode: "text/x-csrc"},
	{Ext: "cpp", Name: "C++", Mode: "text/x-c++src"},
	{Ext: "cs", Name: "C#", Mode: "text/x-csharp"},
	{Ext: "css", Name: "CSS", Mode: "css"},
	{Ext: "go", Name: "Go", Mode: "go"},
	{Ext: "html", Name: "HTML", Mode: "htmlmixed"},
	{Ext: "java", Name: "Java", Mode: "text/x-java"},
	{Ext: "js", Name: "JavaScript", Mode: "javascript"},
	{Ext: "json", Name: "JSON", Mode: "application/json"},
	{Ext: "kt", Name: "Kotlin", Mode: "text/x-kotlin"},
	{Ext: "md", Name: "Markdown", Mode: "markdown"},
	{Ext: "php", Name: "PHP", Mode: "php"},
	{Ext: "py", Name: "Python", Mode: "python"},
	{Ext: "rb", Name: "Ruby", Mode: "ruby"},
	{Ext: "rs", Name: "Rust", Mode: "rust"},
	{Ext: "sh", Name: "Shell", Mode: "shell"},
	{Ext: "sql", Name: "SQL", Mode: "sql"},
	{Ext: "swift", Name: "Swift", Mode: "swift"},
	{Ext: "ts", Name: "TypeScript", Mode: "text/typescript"},
	{Ext: "yaml", Name: "YAML", Mode: "yaml"},
}

var themes = []Theme{
	{Name: "3024 Day", Value: "3024-day"},
	{Name: "3024 Night", Value: "3024-night"},
	{Name: "Ambiance", Value: "ambiance"},
	{Name: "Base16 Dark", Value: "base16-dark"},
	{Name: "Base16 Light", Value: "base16-light"},
	{Name: "Cobalt", Value: "cobalt"},
	{Name: "Dracula", Value: "dracula"},
	{Name: "Eclipse", Value: "eclipse"},
	{Name: "Material", Value: "material"},
	{Name: "Monokai", Value: "monokai"},
	{Name: "Nord", Value: "nord"},
	{Name: "Solarized Dark", Value: "solarized dark"},
	{Name: "Solarized Light", Value: "solarized light"},
	{Name: "Twilight", Value: "twilight"},
	{Name: "Zenburn", Value: "zenburn"},
}

// Languages returns the full language table.
func Languages() []Language {
	return languages
}

// Themes returns the full theme table.
func Themes() []Theme {
	return themes
}

// LookupLanguage resolves a language by its extension code.
func LookupLanguage(ext string) (Language, bool) {
	for _, l := range languages {
		if l.Ext == ext {
			return l, true
		}
	}
	return Language{}, false
}

// LookupTheme resolves a theme by its value.
func LookupTheme(value string) (Theme, bool) {
	for _, t := range themes {
		if t.Value == value {
			return t, true
		}
	}
	return Theme{}, false
}
