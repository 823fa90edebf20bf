package user

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

type Repository interface {
	NextID(ctx context.Context) int
	// Create rejects a username that is already taken with apperror.ErrConflict.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByCredentials(ctx context.Context, username, password string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	// UpdateFunc runs fn against the stored user and saves the change in the
	// same mutation, so concurrent debits are never overwritten.
	UpdateFunc(ctx context.Context, id int, fn func(*model.User) error) (*model.User, error)
}
