package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/category"
	"github.com/fekuna/omnipos-cafeteria-service/internal/category/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: category %d", apperror.ErrNotFound, id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperror.ErrInvalidInput)
	}

	cat, err := uc.repo.UpdateFunc(ctx, input.ID, func(c *model.Category) error {
		c.Name = name
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to update category", zap.Int("category_id", input.ID), zap.Error(err))
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: category %d", apperror.ErrNotFound, input.ID)
	}
	return cat, nil
}

func (uc *categoryUseCase) CategoryName(ctx context.Context, id int) string {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil || cat == nil {
		return model.UnknownCategoryName
	}
	return cat.Name
}
