package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/meal"
	"github.com/fekuna/omnipos-cafeteria-service/internal/meal/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/mealsort"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type mealUseCase struct {
	repo   meal.Repository
	logger logger.ZapLogger
}

func NewMealUseCase(repo meal.Repository, log logger.ZapLogger) meal.UseCase {
	return &mealUseCase{
		repo:   repo,
		logger: log,
	}
}

func validateMeal(name string, price decimal.Decimal, categoryID int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: meal name is required", apperror.ErrInvalidInput)
	}
	if price.IsNegative() {
		return "", fmt.Errorf("%w: price must be >= 0", apperror.ErrInvalidInput)
	}
	if categoryID <= 0 {
		return "", fmt.Errorf("%w: category id must be positive", apperror.ErrInvalidInput)
	}
	return name, nil
}

func (uc *mealUseCase) CreateMeal(ctx context.Context, input *dto.CreateMealInput) (*model.Meal, error) {
	name, err := validateMeal(input.Name, input.Price, input.CategoryID)
	if err != nil {
		return nil, err
	}

	m := &model.Meal{
		ID:         uc.repo.NextID(ctx),
		Name:       name,
		Price:      input.Price,
		CategoryID: input.CategoryID,
		ImagePath:  strings.TrimSpace(input.ImagePath),
	}

	if err := uc.repo.Create(ctx, m); err != nil {
		uc.logger.Error("failed to create meal", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Meal created", zap.Int("meal_id", m.ID), zap.String("name", m.Name))
	return m, nil
}

func (uc *mealUseCase) GetMeal(ctx context.Context, id int) (*model.Meal, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: meal %d", apperror.ErrNotFound, id)
	}
	return m, nil
}

func (uc *mealUseCase) ListMeals(ctx context.Context, filters *dto.MealFilters) ([]model.Meal, error) {
	if filters == nil {
		filters = &dto.MealFilters{}
	}
	kind, err := mealsort.ParseKind(filters.SortBy)
	if err != nil {
		return nil, err
	}

	meals, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filters.SearchQuery))
	filtered := make([]model.Meal, 0, len(meals))
	for _, m := range meals {
		if query != "" && !strings.Contains(strings.ToLower(m.Name), query) {
			continue
		}
		if filters.CategoryID != 0 && m.CategoryID != filters.CategoryID {
			continue
		}
		if filters.MaxPrice != nil && m.Price.GreaterThan(*filters.MaxPrice) {
			continue
		}
		filtered = append(filtered, m)
	}

	return mealsort.Sort(kind, filtered)
}

func (uc *mealUseCase) UpdateMeal(ctx context.Context, input *dto.UpdateMealInput) (*model.Meal, error) {
	name, err := validateMeal(input.Name, input.Price, input.CategoryID)
	if err != nil {
		return nil, err
	}

	m, err := uc.repo.UpdateFunc(ctx, input.ID, func(m *model.Meal) error {
		m.Name = name
		m.Price = input.Price
		m.CategoryID = input.CategoryID
		m.ImagePath = strings.TrimSpace(input.ImagePath)
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to update meal", zap.Int("meal_id", input.ID), zap.Error(err))
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: meal %d", apperror.ErrNotFound, input.ID)
	}
	return m, nil
}

func (uc *mealUseCase) DeleteMeal(ctx context.Context, id int) error {
	found, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("failed to delete meal", zap.Int("meal_id", id), zap.Error(err))
		return err
	}
	if !found {
		return fmt.Errorf("%w: meal %d", apperror.ErrNotFound, id)
	}
	uc.logger.Info("Meal deleted", zap.Int("meal_id", id))
	return nil
}
