package repository

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, balance int64) (*FileRepository, int) {
	t.Helper()
	s := storetest.Open(t)
	var annID int
	require.NoError(t, s.Update(context.Background(), func(d *store.Data) error {
		d.Meals = append(d.Meals,
			model.Meal{ID: d.NextID(store.KindMeal), Name: "Soup", Price: decimal.NewFromInt(150), CategoryID: 2},
			model.Meal{ID: d.NextID(store.KindMeal), Name: "Bread", Price: decimal.NewFromInt(40), CategoryID: 2},
		)
		annID = d.NextID(store.KindUser)
		d.Users = append(d.Users, model.User{ID: annID, Username: "ann", Role: model.RoleStudent, Balance: decimal.NewFromInt(balance)})
		return nil
	}))
	return NewFileRepository(s), annID
}

func TestCreateWithDebit_PricesFromStoredMenu(t *testing.T) {
	repo, annID := seed(t, 1000)
	ctx := context.Background()

	o := &model.Order{
		UserID:     annID,
		TotalPrice: decimal.NewFromInt(1),
		LineItems:  []model.LineItem{{MealID: 1, Quantity: 2}, {MealID: 2, Quantity: 1}, {MealID: 77, Quantity: 3}},
	}
	u, err := repo.CreateWithDebit(ctx, o)
	require.NoError(t, err)

	assert.Equal(t, 1, o.ID)
	assert.True(t, decimal.NewFromInt(340).Equal(o.TotalPrice))
	assert.True(t, decimal.NewFromInt(660).Equal(u.Balance))

	stored, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(340).Equal(stored.TotalPrice))
}

func TestCreateWithDebit_Refusals(t *testing.T) {
	repo, annID := seed(t, 100)
	ctx := context.Background()
	lines := []model.LineItem{{MealID: 1, Quantity: 1}}

	tests := []struct {
		name   string
		userID int
		want   error
	}{
		{"insufficient funds", annID, apperror.ErrInsufficientFunds},
		{"admin", 1, apperror.ErrForbidden},
		{"unknown user", 42, apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &model.Order{UserID: tt.userID, LineItems: lines}
			_, err := repo.CreateWithDebit(ctx, o)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, o.ID)
		})
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
