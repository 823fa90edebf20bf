package meal

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/meal/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

type UseCase interface {
	CreateMeal(ctx context.Context, input *dto.CreateMealInput) (*model.Meal, error)
	GetMeal(ctx context.Context, id int) (*model.Meal, error)
	ListMeals(ctx context.Context, filters *dto.MealFilters) ([]model.Meal, error)
	UpdateMeal(ctx context.Context, input *dto.UpdateMealInput) (*model.Meal, error)
	DeleteMeal(ctx context.Context, id int) error
}
