package session

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	categoryrepo "github.com/fekuna/omnipos-cafeteria-service/internal/category/repository"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	mealrepo "github.com/fekuna/omnipos-cafeteria-service/internal/meal/repository"
	"github.com/fekuna/omnipos-cafeteria-service/internal/metrics"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order"
	orderrepo "github.com/fekuna/omnipos-cafeteria-service/internal/order/repository"
	orderusecase "github.com/fekuna/omnipos-cafeteria-service/internal/order/usecase"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store/storetest"
	userrepo "github.com/fekuna/omnipos-cafeteria-service/internal/user/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, balance int64) (order.UseCase, *model.User) {
	t.Helper()
	s := storetest.Open(t)
	ann := model.User{Username: "ann", Role: model.RoleStudent, Balance: decimal.NewFromInt(balance)}
	require.NoError(t, s.Update(context.Background(), func(d *store.Data) error {
		d.Meals = append(d.Meals,
			model.Meal{ID: d.NextID(store.KindMeal), Name: "Soup", Price: decimal.NewFromInt(150), CategoryID: 2},
			model.Meal{ID: d.NextID(store.KindMeal), Name: "Bread", Price: decimal.NewFromInt(40), CategoryID: 2},
		)
		ann.ID = d.NextID(store.KindUser)
		d.Users = append(d.Users, ann)
		return nil
	}))

	uc := orderusecase.NewOrderUseCase(
		orderrepo.NewFileRepository(s),
		userrepo.NewFileRepository(s),
		mealrepo.NewFileRepository(s),
		categoryrepo.NewFileRepository(s),
		metrics.NewUnregistered(),
		logger.NewNop(),
	)
	return uc, &ann
}

func TestStart(t *testing.T) {
	orders, ann := setup(t, 1000)

	sess, err := Start(ann, orders, logger.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Student{}, sess)
	assert.NotEmpty(t, sess.ID())

	admin := &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}
	sess, err = Start(admin, orders, logger.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Admin{}, sess)
	assert.Equal(t, "admin", sess.User().Username)

	other, err := Start(admin, orders, logger.NewNop())
	require.NoError(t, err)
	assert.NotEqual(t, sess.ID(), other.ID())

	_, err = NewStudent(admin, orders, logger.NewNop())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = NewAdmin(ann)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestStudent_PlaceOrderClearsCartAndUpdatesBalance(t *testing.T) {
	orders, ann := setup(t, 1000)
	ctx := context.Background()

	s, err := NewStudent(ann, orders, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.AddToCart(1))
	require.NoError(t, s.AddToCart(1))
	require.NoError(t, s.AddToCart(2))

	total, err := s.CartTotal(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(340).Equal(total))

	o, err := s.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(340).Equal(o.TotalPrice))

	assert.Empty(t, s.Cart())
	assert.True(t, decimal.NewFromInt(660).Equal(s.Balance()))

	history, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, o.ID, history[0].ID)
}

func TestStudent_FailedOrderKeepsCart(t *testing.T) {
	orders, ann := setup(t, 50)
	ctx := context.Background()

	s, err := NewStudent(ann, orders, logger.NewNop())
	require.NoError(t, err)

	_, err = s.PlaceOrder(ctx)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	require.NoError(t, s.AddToCart(1))
	require.NoError(t, s.AddToCart(2))

	_, err = s.PlaceOrder(ctx)
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
	assert.Equal(t, []model.LineItem{{MealID: 1, Quantity: 1}, {MealID: 2, Quantity: 1}}, s.Cart())
	assert.True(t, decimal.NewFromInt(50).Equal(s.Balance()))

	assert.True(t, s.RemoveFromCart(1))
	assert.Equal(t, []model.LineItem{{MealID: 2, Quantity: 1}}, s.Cart())

	o, err := s.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(o.TotalPrice))
	assert.True(t, decimal.NewFromInt(10).Equal(s.Balance()))
}

func TestStudent_IgnoresOtherUsersBalance(t *testing.T) {
	orders, ann := setup(t, 1000)

	s, err := NewStudent(ann, orders, logger.NewNop())
	require.NoError(t, err)

	s.BalanceChanged(ann.ID+1, decimal.NewFromInt(1))
	assert.True(t, decimal.NewFromInt(1000).Equal(s.Balance()))
}
