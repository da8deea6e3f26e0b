package repository

import (
	"context"

	"github.com/roguepikachu/canopy/internal/domain"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	Insert(ctx context.Context, u domain.User) (domain.User, error)
	FindByID(ctx context.Context, id int) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}
