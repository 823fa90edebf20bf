package order

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order/dto"
	"github.com/shopspring/decimal"
)

// BalanceObserver is told about a user's new balance after an order is paid.
type BalanceObserver interface {
	BalanceChanged(userID int, balance decimal.Decimal)
}

type UseCase interface {
	// Quote prices lines at the current menu prices.
	Quote(ctx context.Context, lines []model.LineItem) (decimal.Decimal, error)
	// PlaceOrder turns a cart into a paid order. observer may be nil.
	PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput, observer BalanceObserver) (*model.Order, error)

	GetOrder(ctx context.Context, id int) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListUserOrders(ctx context.Context, userID int) ([]model.Order, error)
	ListOrdersByDate(ctx context.Context, date model.Date) ([]model.Order, error)
	FilterOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	LineItemSummary(ctx context.Context, o *model.Order) (string, error)
	// ExportOrders writes the filtered orders to input.Path and returns how many were written.
	ExportOrders(ctx context.Context, input *dto.ExportOrdersInput) (int, error)
}
