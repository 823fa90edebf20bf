package category

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/category/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

type UseCase interface {
	GetCategory(ctx context.Context, id int) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	// CategoryName never fails: a dangling id resolves to model.UnknownCategoryName.
	CategoryName(ctx context.Context, id int) string
}
