package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	mealrepo "github.com/fekuna/omnipos-cafeteria-service/internal/meal/repository"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	orderrepo "github.com/fekuna/omnipos-cafeteria-service/internal/order/repository"
	"github.com/fekuna/omnipos-cafeteria-service/internal/report"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store/storetest"
	userrepo "github.com/fekuna/omnipos-cafeteria-service/internal/user/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(d *store.Data) error {
		d.Meals = append(d.Meals, model.Meal{ID: d.NextID(store.KindMeal), Name: "Soup", Price: decimal.NewFromInt(150), CategoryID: 2})
		d.Orders = append(d.Orders, model.Order{
			ID:         d.NextID(store.KindOrder),
			UserID:     1,
			Date:       model.Date{Year: 2024, Month: 3, Day: 9},
			TotalPrice: decimal.NewFromInt(300),
			LineItems:  []model.LineItem{{MealID: 1, Quantity: 2}},
		})
		return nil
	}))

	uc := NewReportUseCase(orderrepo.NewFileRepository(s), mealrepo.NewFileRepository(s), userrepo.NewFileRepository(s), logger.NewNop())

	out, err := uc.Generate(ctx, report.Revenue)
	require.NoError(t, err)
	assert.Contains(t, out, "Total revenue: 300.00")
	assert.Contains(t, out, "09.03.2024: 300.00")

	out, err = uc.Generate(ctx, report.PopularDishes)
	require.NoError(t, err)
	assert.Contains(t, out, "Soup: 2 servings")

	_, err = uc.Generate(ctx, report.Kind(0))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
