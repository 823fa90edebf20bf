package order

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

type Repository interface {
	// CreateWithDebit prices o.LineItems at the stored menu, deducts the
	// total from the ordering user and appends o, all in one store mutation.
	// It sets o.ID and o.TotalPrice. Nothing changes when the user is missing,
	// is not a student or cannot afford the total.
	CreateWithDebit(ctx context.Context, o *model.Order) (*model.User, error)

	FindByID(ctx context.Context, id int) (*model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByUser(ctx context.Context, userID int) ([]model.Order, error)
	FindByDate(ctx context.Context, date model.Date) ([]model.Order, error)
}
