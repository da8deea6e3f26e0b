package domain

import (
	"time"

	"github.com/roguepikachu/canopy/internal/registry"
)

// TimeFormat is the standard format for time serialization.
const TimeFormat = "2006-01-02T15:04:05Z"

// PublicSourceLimit caps the source text length in public listings.
const PublicSourceLimit = 200

// SnippetView is a context-dependent projection of a Snippet. Fields not set
// by a given projection are omitted from the JSON output.
type SnippetView struct {
	ID         int      `json:"id,omitempty"`
	UID        string   `json:"uid"`
	Title      string   `json:"title"`
	SourceCode string   `json:"source_code,omitempty"`
	Language   string   `json:"language"`
	Mode       string   `json:"mode,omitempty"`
	Visibility int      `json:"visibility,omitempty"`
	Theme      string   `json:"theme,omitempty"`
	Owner      string   `json:"owner,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	PassCode   string   `json:"pass_code,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func languageName(ext string) string {
	if lang, ok := registry.LookupLanguage(ext); ok {
		return lang.Name
	}
	return ext
}

func languageMode(ext string) string {
	if lang, ok := registry.LookupLanguage(ext); ok {
		return lang.Mode
	}
	return ""
}

// OwnerView is the full projection returned to the snippet's owner.
// The pass code is included only for private snippets.
func OwnerView(s Snippet) SnippetView {
	v := SnippetView{
		ID:         s.ID,
		UID:        s.UID,
		Title:      s.Title,
		SourceCode: s.SourceCode,
		Language:   languageName(s.Language),
		Visibility: s.Visibility,
		Theme:      s.Theme,
		Owner:      s.OwnerName,
		Tags:       s.Tags,
		CreatedAt:  formatTime(s.CreatedAt),
		UpdatedAt:  formatTimePtr(s.UpdatedAt),
	}
	if s.Visibility == VisibilityPrivate {
		v.PassCode = s.PassCode
	}
	return v
}

// MineListItemView is the owner-listing projection: the owner view without
// source text, pass code, or theme.
func MineListItemView(s Snippet) SnippetView {
	v := OwnerView(s)
	v.SourceCode = ""
	v.PassCode = ""
	v.Theme = ""
	return v
}

// DetailView is the single-snippet projection for public or unlocked reads:
// internal id, visibility, and updated timestamp are dropped and the language
// code is resolved to its editor mode.
func DetailView(s Snippet) SnippetView {
	v := OwnerView(s)
	v.ID = 0
	v.Visibility = 0
	v.UpdatedAt = ""
	v.Mode = languageMode(s.Language)
	return v
}

// PublicListItemView is the public-listing projection: the detail view with
// source text truncated to the first PublicSourceLimit characters. The cut is
// made on a rune boundary so multi-byte source never yields invalid UTF-8.
func PublicListItemView(s Snippet) SnippetView {
	v := DetailView(s)
	if runes := []rune(v.SourceCode); len(runes) > PublicSourceLimit {
		v.SourceCode = string(runes[:PublicSourceLimit])
	}
	return v
}

// EditView is the owner-only editable projection: owner and timestamps are
// dropped and both the raw language code and the resolved mode are exposed.
func EditView(s Snippet) SnippetView {
	v := OwnerView(s)
	v.ID = 0
	v.Owner = ""
	v.CreatedAt = ""
	v.UpdatedAt = ""
	v.Language = s.Language
	v.Mode = languageMode(s.Language)
	return v
}
