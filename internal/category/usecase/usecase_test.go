package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/category/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/category/repository"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	s := storetest.Open(t)
	uc := NewCategoryUseCase(repository.NewFileRepository(s), logger.NewNop())
	ctx := context.Background()

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, model.Category{ID: 1, Name: "Breakfast"}, cats[0])

	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: 3, Name: " Snacks "})
	require.NoError(t, err)
	assert.Equal(t, "Snacks", updated.Name)

	got, err := uc.GetCategory(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Snacks", got.Name)
	assert.Equal(t, "Snacks", storetest.ReadDocument(t, s.Path()).Categories[2].Name)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: 3, Name: "  "})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: 9, Name: "Dessert"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = uc.GetCategory(ctx, 9)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.Equal(t, "Lunch", uc.CategoryName(ctx, 2))
	assert.Equal(t, model.UnknownCategoryName, uc.CategoryName(ctx, 9))
}
