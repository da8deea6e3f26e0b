package fake

import (
	"context"
	"time"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/repository"
)

// UserRepository is an in-memory fake implementing repository.UserRepository.
type UserRepository struct {
	byID   map[int]domain.User
	nextID int
}

// UserOption configures the fake user repository.
type UserOption func(*UserRepository)

// WithUsers seeds the repository with the provided users.
func WithUsers(users ...domain.User) UserOption {
	return func(r *UserRepository) {
		for _, u := range users {
			if u.ID == 0 {
				u.ID = r.nextID
			}
			if u.ID >= r.nextID {
				r.nextID = u.ID + 1
			}
			r.byID[u.ID] = u
		}
	}
}

// NewUserRepository creates a new in-memory fake user repo.
func NewUserRepository(opts ...UserOption) *UserRepository {
	r := &UserRepository{byID: make(map[int]domain.User), nextID: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *UserRepository) Insert(_ context.Context, u domain.User) (domain.User, error) {
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.User{}, repository.ErrDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.byID[u.ID] = u
	return u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int) (domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return domain.User{}, repository.ErrNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

var _ repository.UserRepository = (*UserRepository)(nil)
