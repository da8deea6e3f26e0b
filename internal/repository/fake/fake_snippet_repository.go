// Package fake provides in-memory fakes for repository interfaces for testing.
package fake

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/repository"
)

// SnippetRepository is an in-memory fake implementing repository.SnippetRepository.
// It's intentionally simple and not concurrency-safe (tests typically run single-threaded).
type SnippetRepository struct {
	byUID  map[string]domain.Snippet
	nextID int
	now    func() time.Time
}

// Option configures the fake repository.
type Option func(*SnippetRepository)

// WithNow overrides the time source used for update/delete stamps.
func WithNow(f func() time.Time) Option { return func(r *SnippetRepository) { r.now = f } }

// WithItems seeds the repository with the provided snippets (by UID).
func WithItems(items ...domain.Snippet) Option {
	return func(r *SnippetRepository) {
		for _, s := range items {
			if s.ID == 0 {
				s.ID = r.nextID
			}
			if s.ID >= r.nextID {
				r.nextID = s.ID + 1
			}
			r.byUID[s.UID] = s
		}
	}
}

// NewSnippetRepository creates a new in-memory fake repo.
func NewSnippetRepository(opts ...Option) *SnippetRepository {
	r := &SnippetRepository{byUID: make(map[string]domain.Snippet), nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SnippetRepository) Insert(_ context.Context, s domain.Snippet) (domain.Snippet, error) {
	if _, ok := r.byUID[s.UID]; ok {
		return domain.Snippet{}, repository.ErrDuplicate
	}
	s.ID = r.nextID
	r.nextID++
	r.byUID[s.UID] = s
	return s, nil
}

func (r *SnippetRepository) FindByUID(_ context.Context, uid string) (domain.Snippet, error) {
	if s, ok := r.byUID[uid]; ok && s.DeletedAt == nil {
		return s, nil
	}
	return domain.Snippet{}, repository.ErrNotFound
}

func (r *SnippetRepository) UIDExists(_ context.Context, uid string) (bool, error) {
	_, ok := r.byUID[uid]
	return ok, nil
}

func matches(s domain.Snippet, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(s.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(domain.JoinTags(s.Tags)), q)
}

func paginate(items []domain.Snippet, page, limit int) []domain.Snippet {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	start := (page - 1) * limit
	if start >= len(items) {
		return []domain.Snippet{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (r *SnippetRepository) ListMine(_ context.Context, userID int, q string, page, limit int) ([]domain.Snippet, error) {
	items := make([]domain.Snippet, 0, len(r.byUID))
	for _, s := range r.byUID {
		if s.DeletedAt != nil || s.UserID != userID || !matches(s, q) {
			continue
		}
		items = append(items, s)
	}
	return paginate(items, page, limit), nil
}

func (r *SnippetRepository) ListPublic(_ context.Context, q string, page, limit int) ([]domain.Snippet, int, error) {
	items := make([]domain.Snippet, 0, len(r.byUID))
	for _, s := range r.byUID {
		if s.DeletedAt != nil || s.Visibility != domain.VisibilityPublic || !matches(s, q) {
			continue
		}
		items = append(items, s)
	}
	total := len(items)
	return paginate(items, page, limit), total, nil
}

func (r *SnippetRepository) Update(_ context.Context, uid string, patch domain.SnippetPatch) error {
	s, ok := r.byUID[uid]
	if !ok || s.DeletedAt != nil {
		return repository.ErrNotFound
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.SourceCode != nil {
		s.SourceCode = *patch.SourceCode
	}
	if patch.Language != nil {
		s.Language = *patch.Language
	}
	if patch.Tags != nil {
		s.Tags = *patch.Tags
	}
	if patch.Visibility != nil {
		s.Visibility = *patch.Visibility
	}
	if patch.PassCode != nil {
		s.PassCode = *patch.PassCode
	}
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	now := r.now()
	s.UpdatedAt = &now
	r.byUID[uid] = s
	return nil
}

func (r *SnippetRepository) Delete(_ context.Context, uid string) error {
	s, ok := r.byUID[uid]
	if !ok || s.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := r.now()
	s.DeletedAt = &now
	r.byUID[uid] = s
	return nil
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
