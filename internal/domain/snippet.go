// Package domain contains domain models for the application.
package domain

import (
	"strings"
	"time"
)

// Visibility tiers for a snippet.
const (
	VisibilityPublic  = 1
	VisibilityPrivate = 2
)

// PassCodeLength is the exact length of a private snippet's pass code.
const PassCodeLength = 6

// TagSeparator joins a snippet's tag list into its stored form.
const TagSeparator = ","

// Snippet represents a code snippet entity.
type Snippet struct {
	ID         int        `json:"id"`
	UID        string     `json:"uid"`
	Title      string     `json:"title"`
	SourceCode string     `json:"source_code"`
	Language   string     `json:"language"`
	Tags       []string   `json:"tags"`
	Visibility int        `json:"visibility"`
	PassCode   string     `json:"pass_code,omitempty"`
	Theme      string     `json:"theme"`
	UserID     int        `json:"user_id"`
	OwnerName  string     `json:"owner,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// CreateSnippetRequest is the expected request body for creating a snippet.
type CreateSnippetRequest struct {
	Title      string   `json:"title" binding:"required"`
	SourceCode string   `json:"source_code" binding:"required"`
	Language   string   `json:"language" binding:"required"`
	Tags       []string `json:"tags"`
	Visibility int      `json:"visibility" binding:"required"`
	PassCode   string   `json:"pass_code"`
	Theme      string   `json:"theme" binding:"required"`
}

// UpdateSnippetRequest is the expected request body for a partial snippet update.
// Each field is independently optional; absent fields leave the stored value untouched.
type UpdateSnippetRequest struct {
	Title      *string   `json:"title"`
	SourceCode *string   `json:"source_code"`
	Language   *string   `json:"language"`
	Tags       *[]string `json:"tags"`
	Visibility *int      `json:"visibility"`
	PassCode   *string   `json:"pass_code"`
	Theme      *string   `json:"theme"`
}

// PrivateSnippetRequest carries the pass code submitted to unlock a private snippet.
type PrivateSnippetRequest struct {
	PassCode string `json:"pass_code" binding:"required"`
}

// ReviewSnippetRequest carries the source text forwarded to the review service.
type ReviewSnippetRequest struct {
	SourceCode string `json:"source_code" binding:"required"`
}

// SnippetPatch is the repository-level partial update. Nil fields are not written.
type SnippetPatch struct {
	Title      *string
	SourceCode *string
	Language   *string
	Tags       *[]string
	Visibility *int
	PassCode   *string
	Theme      *string
}

// JoinTags normalizes a tag list into its single stored string.
// Empty lists normalize to "no tags" (the empty string).
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return strings.Join(tags, TagSeparator)
}

// SplitTags restores the order-preserving tag list from its stored string.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, TagSeparator)
}
