// Package repository defines data-access contracts for the application.
package repository

import (
	"context"
	"errors"

	"github.com/roguepikachu/canopy/internal/domain"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint (uid, username, email) is violated.
var ErrDuplicate = errors.New("duplicate")

// SnippetRepository defines methods for snippet data access. Implementations
// exclude soft-deleted rows from every query.
type SnippetRepository interface {
	Insert(ctx context.Context, s domain.Snippet) (domain.Snippet, error)
	FindByUID(ctx context.Context, uid string) (domain.Snippet, error)
	UIDExists(ctx context.Context, uid string) (bool, error)
	// ListMine returns the owner's snippets matching q against title or tags,
	// newest first, paginated.
	ListMine(ctx context.Context, userID int, q string, page, limit int) ([]domain.Snippet, error)
	// ListPublic returns public snippets matching q plus the total match count.
	ListPublic(ctx context.Context, q string, page, limit int) ([]domain.Snippet, int, error)
	// Update applies a partial merge: nil patch fields leave stored values untouched.
	Update(ctx context.Context, uid string, patch domain.SnippetPatch) error
	// Delete soft-deletes by stamping deleted_at.
	Delete(ctx context.Context, uid string) error
}
