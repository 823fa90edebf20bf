package category

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id int) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	UpdateFunc(ctx context.Context, id int, fn func(*model.Category) error) (*model.Category, error)
}
