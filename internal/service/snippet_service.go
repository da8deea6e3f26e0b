package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/roguepikachu/canopy/internal/apperror"
	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/registry"
	"github.com/roguepikachu/canopy/internal/repository"
	"github.com/roguepikachu/canopy/internal/validation"
)

// Pagination bounds.
const (
	ServiceDefaultPage  = 1
	ServiceDefaultLimit = 10
	ServiceMaxLimit     = 100
)

// Service provides snippet-related business logic: validation, access rules,
// identifier generation, and persistence orchestration.
type Service struct {
	snippets repository.SnippetRepository
	users    repository.UserRepository
	clock    Clock
	uidFn    func() string
}

// Option configures the Service.
type Option func(*Service)

// WithUIDSource overrides the raw identifier candidate source. Used in tests.
func WithUIDSource(f func() string) Option {
	return func(s *Service) { s.uidFn = f }
}

// NewService creates a new Service over the given repositories and clock.
func NewService(snippets repository.SnippetRepository, users repository.UserRepository, clock Clock, opts ...Option) *Service {
	s := &Service{snippets: snippets, users: users, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = ServiceDefaultPage
	}
	if limit < 1 {
		limit = ServiceDefaultLimit
	}
	if limit > ServiceMaxLimit {
		limit = ServiceMaxLimit
	}
	return page, limit
}

// CreateSnippet validates the request, assigns a fresh public identifier, and
// persists the snippet for the given owner.
func (s *Service) CreateSnippet(ctx context.Context, userID int, req domain.CreateSnippetRequest) (domain.Snippet, error) {
	if err := validation.ValidateNewSnippet(&req); err != nil {
		return domain.Snippet{}, err
	}
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Snippet{}, apperror.NotFound("User not found")
		}
		return domain.Snippet{}, fmt.Errorf("find owner: %w", err)
	}

	uid, err := GenerateUID(ctx, s.snippets, s.uidFn)
	if err != nil {
		return domain.Snippet{}, fmt.Errorf("generate uid: %w", err)
	}

	theme := req.Theme
	if theme == "" {
		theme = registry.DefaultTheme
	}
	snippet := domain.Snippet{
		UID:        uid,
		Title:      req.Title,
		SourceCode: req.SourceCode,
		Language:   req.Language,
		Tags:       req.Tags,
		Visibility: req.Visibility,
		PassCode:   req.PassCode,
		Theme:      theme,
		UserID:     userID,
		CreatedAt:  s.clock.Now(),
	}
	stored, err := s.snippets.Insert(ctx, snippet)
	if err != nil {
		return domain.Snippet{}, fmt.Errorf("insert snippet: %w", err)
	}
	stored.OwnerName = owner.Name
	return stored, nil
}

func (s *Service) findByUID(ctx context.Context, uid string) (domain.Snippet, error) {
	snippet, err := s.snippets.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Snippet{}, apperror.NotFound("Snippet not found")
		}
		return domain.Snippet{}, fmt.Errorf("find by uid: %w", err)
	}
	return snippet, nil
}

// GetSnippet fetches a snippet for viewing. Public snippets are visible to
// anyone, including anonymous callers; private ones only to their owner.
// viewerID is nil for anonymous requests.
func (s *Service) GetSnippet(ctx context.Context, uid string, viewerID *int) (domain.Snippet, error) {
	snippet, err := s.findByUID(ctx, uid)
	if err != nil {
		return domain.Snippet{}, err
	}
	if snippet.Visibility == domain.VisibilityPrivate {
		if viewerID == nil || *viewerID != snippet.UserID {
			return domain.Snippet{}, apperror.Forbidden("This is a private snippet")
		}
	}
	return snippet, nil
}

// UnlockPrivateSnippet grants a one-time view of a private snippet in exchange
// for the correct pass code. It does not elevate the caller's general access.
func (s *Service) UnlockPrivateSnippet(ctx context.Context, uid, passCode string) (domain.Snippet, error) {
	if err := validation.ValidatePassCode(passCode); err != nil {
		return domain.Snippet{}, err
	}
	snippet, err := s.findByUID(ctx, uid)
	if err != nil {
		return domain.Snippet{}, err
	}
	if snippet.PassCode != passCode {
		return domain.Snippet{}, apperror.Forbidden("Access denied, provide the correct passcode")
	}
	return snippet, nil
}

// GetSnippetForEdit fetches a snippet for its editable projection. Owner only.
func (s *Service) GetSnippetForEdit(ctx context.Context, uid string, viewerID int) (domain.Snippet, error) {
	snippet, err := s.findByUID(ctx, uid)
	if err != nil {
		return domain.Snippet{}, err
	}
	if snippet.UserID != viewerID {
		return domain.Snippet{}, apperror.Forbidden("You are not authorized to edit this snippet")
	}
	return snippet, nil
}

// UpdateSnippet applies a validated partial update. Owner only. Each provided
// field overwrites its stored counterpart; absent fields are left untouched.
func (s *Service) UpdateSnippet(ctx context.Context, uid string, viewerID int, req domain.UpdateSnippetRequest) error {
	snippet, err := s.findByUID(ctx, uid)
	if err != nil {
		return err
	}
	if snippet.UserID != viewerID {
		return apperror.Forbidden("You don't have permission to edit this snippet")
	}
	if err := validation.ValidateUpdateSnippet(&req, snippet.Visibility); err != nil {
		return err
	}
	patch := domain.SnippetPatch{
		Title:      req.Title,
		SourceCode: req.SourceCode,
		Language:   req.Language,
		Tags:       req.Tags,
		Visibility: req.Visibility,
		PassCode:   req.PassCode,
		Theme:      req.Theme,
	}
	if err := s.snippets.Update(ctx, uid, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Snippet not found")
		}
		return fmt.Errorf("update snippet: %w", err)
	}
	return nil
}

// DeleteSnippet removes a snippet. Owner only.
func (s *Service) DeleteSnippet(ctx context.Context, uid string, viewerID int) error {
	snippet, err := s.findByUID(ctx, uid)
	if err != nil {
		return err
	}
	if snippet.UserID != viewerID {
		return apperror.Forbidden("You don't have permission to delete this snippet")
	}
	if err := s.snippets.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Snippet not found")
		}
		return fmt.Errorf("delete snippet: %w", err)
	}
	return nil
}

// ListMine returns the requester's snippets filtered by q against title or tags.
func (s *Service) ListMine(ctx context.Context, userID int, q string, page, limit int) ([]domain.Snippet, error) {
	page, limit = clampPaging(page, limit)
	items, err := s.snippets.ListMine(ctx, userID, q, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list mine: %w", err)
	}
	return items, nil
}

// ListPublic returns public snippets filtered by q, plus the total match count.
func (s *Service) ListPublic(ctx context.Context, q string, page, limit int) ([]domain.Snippet, int, error) {
	page, limit = clampPaging(page, limit)
	items, total, err := s.snippets.ListPublic(ctx, q, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list public: %w", err)
	}
	return items, total, nil
}
