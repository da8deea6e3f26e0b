// Package postgres provides Postgres-backed implementations of the repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/repository"
	"github.com/roguepikachu/canopy/pkg/logger"
)

const uniqueViolation = "23505"

// SnippetRepository implements repository.SnippetRepository using Postgres.
type SnippetRepository struct {
	pool *pgxpool.Pool
}

// NewSnippetRepository creates a new Postgres-backed snippet repository.
func NewSnippetRepository(pool *pgxpool.Pool) *SnippetRepository {
	return &SnippetRepository{pool: pool}
}

// EnsureSchema creates required tables if they don't exist. The unique
// constraint on uid is the authoritative guard against identifier collisions;
// the generator's existence pre-check is only an optimization.
func (r *SnippetRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    username VARCHAR(15) UNIQUE NOT NULL,
    email VARCHAR(50) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NULL,
    google_auth BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NULL
);
CREATE TABLE IF NOT EXISTS snippets (
    id SERIAL PRIMARY KEY,
    uid VARCHAR(50) UNIQUE NOT NULL,
    title VARCHAR(50) NOT NULL,
    source_code TEXT NOT NULL,
    language VARCHAR(10) NOT NULL,
    tags VARCHAR(255) NULL,
    visibility SMALLINT NOT NULL,
    pass_code VARCHAR(6) NULL,
    theme VARCHAR(25) NOT NULL DEFAULT 'monokai',
    user_id INTEGER NOT NULL REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NULL,
    deleted_at TIMESTAMPTZ NULL
);
CREATE INDEX IF NOT EXISTS idx_snippets_created_at ON snippets (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_snippets_user_id ON snippets (user_id);
CREATE INDEX IF NOT EXISTS idx_snippets_visibility ON snippets (visibility);
`
	_, err := r.pool.Exec(ctx, schema)
	if err != nil {
		return err
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

func nullableTags(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	s := domain.JoinTags(tags)
	return &s
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Insert adds a new snippet and returns it with its assigned internal id.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) (domain.Snippet, error) {
	const q = `
INSERT INTO snippets (uid, title, source_code, language, tags, visibility, pass_code, theme, user_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`
	err := r.pool.QueryRow(ctx, q,
		s.UID, s.Title, s.SourceCode, s.Language, nullableTags(s.Tags),
		s.Visibility, nullableStr(s.PassCode), s.Theme, s.UserID, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Snippet{}, repository.ErrDuplicate
		}
		return domain.Snippet{}, fmt.Errorf("insert snippet: %w", err)
	}
	return s, nil
}

const snippetColumns = `
s.id, s.uid, s.title, s.source_code, s.language, s.tags, s.visibility,
s.pass_code, s.theme, s.user_id, u.name, s.created_at, s.updated_at
`

func scanSnippet(row pgx.Row) (domain.Snippet, error) {
	var (
		s        domain.Snippet
		tags     *string
		passCode *string
	)
	err := row.Scan(&s.ID, &s.UID, &s.Title, &s.SourceCode, &s.Language, &tags,
		&s.Visibility, &passCode, &s.Theme, &s.UserID, &s.OwnerName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Snippet{}, err
	}
	if tags != nil {
		s.Tags = domain.SplitTags(*tags)
	}
	if passCode != nil {
		s.PassCode = *passCode
	}
	return s, nil
}

// FindByUID retrieves a snippet by its public identifier, joined with its owner's name.
func (r *SnippetRepository) FindByUID(ctx context.Context, uid string) (domain.Snippet, error) {
	q := `
SELECT ` + snippetColumns + `
FROM snippets s
JOIN users u ON u.id = s.user_id
WHERE s.uid = $1 AND s.deleted_at IS NULL
`
	s, err := scanSnippet(r.pool.QueryRow(ctx, q, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Snippet{}, repository.ErrNotFound
		}
		return domain.Snippet{}, fmt.Errorf("query snippet: %w", err)
	}
	return s, nil
}

// UIDExists reports whether a snippet with the given public identifier exists,
// deleted rows included: a uid is immutable once assigned and never reused.
func (r *SnippetRepository) UIDExists(ctx context.Context, uid string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM snippets WHERE uid = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, uid).Scan(&exists); err != nil {
		return false, fmt.Errorf("check uid: %w", err)
	}
	return exists, nil
}

func (r *SnippetRepository) queryList(ctx context.Context, q string, args ...any) ([]domain.Snippet, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	defer rows.Close()
	var res []domain.Snippet
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		res = append(res, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return res, nil
}

// ListMine returns the owner's snippets matching q against title or tags,
// newest first, paginated.
func (r *SnippetRepository) ListMine(ctx context.Context, userID int, q string, page, limit int) ([]domain.Snippet, error) {
	offset := (page - 1) * limit
	query := `
SELECT ` + snippetColumns + `
FROM snippets s
JOIN users u ON u.id = s.user_id
WHERE s.user_id = $1 AND s.deleted_at IS NULL
  AND (s.title ILIKE $2 OR s.tags ILIKE $2)
ORDER BY s.created_at DESC
LIMIT $3 OFFSET $4
`
	return r.queryList(ctx, query, userID, likePattern(q), limit, offset)
}

// ListPublic returns public snippets matching q plus the total match count.
func (r *SnippetRepository) ListPublic(ctx context.Context, q string, page, limit int) ([]domain.Snippet, int, error) {
	offset := (page - 1) * limit
	const countQuery = `
SELECT COUNT(*)
FROM snippets s
WHERE s.visibility = $1 AND s.deleted_at IS NULL
  AND (s.title ILIKE $2 OR s.tags ILIKE $2)
`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, domain.VisibilityPublic, likePattern(q)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count snippets: %w", err)
	}

	query := `
SELECT ` + snippetColumns + `
FROM snippets s
JOIN users u ON u.id = s.user_id
WHERE s.visibility = $1 AND s.deleted_at IS NULL
  AND (s.title ILIKE $2 OR s.tags ILIKE $2)
ORDER BY s.created_at DESC
LIMIT $3 OFFSET $4
`
	items, err := r.queryList(ctx, query, domain.VisibilityPublic, likePattern(q), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies a partial merge; nil patch fields are left untouched.
// The mapping is strictly 1:1 between patch fields and columns.
func (r *SnippetRepository) Update(ctx context.Context, uid string, patch domain.SnippetPatch) error {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.SourceCode != nil {
		add("source_code", *patch.SourceCode)
	}
	if patch.Language != nil {
		add("language", *patch.Language)
	}
	if patch.Tags != nil {
		add("tags", nullableTags(*patch.Tags))
	}
	if patch.Visibility != nil {
		add("visibility", *patch.Visibility)
	}
	if patch.PassCode != nil {
		add("pass_code", nullableStr(*patch.PassCode))
	}
	if patch.Theme != nil {
		add("theme", *patch.Theme)
	}
	if len(sets) == 0 {
		return nil
	}
	add("updated_at", time.Now().UTC())

	args = append(args, uid)
	q := fmt.Sprintf(
		"UPDATE snippets SET %s WHERE uid = $%d AND deleted_at IS NULL",
		strings.Join(sets, ", "), len(args),
	)
	ct, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update snippet: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a snippet by stamping deleted_at.
func (r *SnippetRepository) Delete(ctx context.Context, uid string) error {
	const q = `UPDATE snippets SET deleted_at = NOW() WHERE uid = $1 AND deleted_at IS NULL`
	ct, err := r.pool.Exec(ctx, q, uid)
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func likePattern(q string) string {
	return "%" + q + "%"
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
