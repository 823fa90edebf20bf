package meal

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

type Repository interface {
	NextID(ctx context.Context) int
	// Create rejects an id that is already in use with apperror.ErrConflict.
	Create(ctx context.Context, meal *model.Meal) error
	FindByID(ctx context.Context, id int) (*model.Meal, error)
	FindAll(ctx context.Context) ([]model.Meal, error)
	UpdateFunc(ctx context.Context, id int, fn func(*model.Meal) error) (*model.Meal, error)
	// Delete reports whether a meal with id existed.
	Delete(ctx context.Context, id int) (bool, error)
}
