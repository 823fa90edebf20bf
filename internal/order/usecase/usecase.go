package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/category"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/meal"
	"github.com/fekuna/omnipos-cafeteria-service/internal/metrics"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/fekuna/omnipos-cafeteria-service/internal/user"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo       order.Repository
	users      user.Repository
	meals      meal.Repository
	categories category.Repository
	metrics    *metrics.Metrics
	logger     logger.ZapLogger
	today      func() model.Date
}

func NewOrderUseCase(
	repo order.Repository,
	users user.Repository,
	meals meal.Repository,
	categories category.Repository,
	m *metrics.Metrics,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:       repo,
		users:      users,
		meals:      meals,
		categories: categories,
		metrics:    m,
		logger:     log,
		today:      model.Today,
	}
}

func (uc *orderUseCase) Quote(ctx context.Context, lines []model.LineItem) (decimal.Decimal, error) {
	meals, err := uc.meals.FindAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return order.Total(lines, meals), nil
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput, observer order.BalanceObserver) (*model.Order, error) {
	// 1. Validate the cart
	if len(input.Lines) == 0 {
		uc.metrics.ObserveRejection(metrics.ReasonInvalidCart)
		return nil, fmt.Errorf("%w: cart is empty", apperror.ErrInvalidInput)
	}
	for _, l := range input.Lines {
		if l.Quantity < 1 {
			uc.metrics.ObserveRejection(metrics.ReasonInvalidCart)
			return nil, fmt.Errorf("%w: meal %d quantity %d", apperror.ErrInvalidInput, l.MealID, l.Quantity)
		}
	}

	u, err := uc.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", apperror.ErrNotFound, input.UserID)
	}
	if u.Role != model.RoleStudent {
		uc.metrics.ObserveRejection(metrics.ReasonForbidden)
		return nil, fmt.Errorf("%w: only students can order", apperror.ErrForbidden)
	}

	// 2. Price, debit and record in one mutation
	o := &model.Order{
		UserID:    u.ID,
		Date:      uc.today(),
		LineItems: slices.Clone(input.Lines),
	}
	debited, err := uc.repo.CreateWithDebit(ctx, o)
	if err != nil {
		uc.metrics.ObserveRejection(rejectionReason(err))
		if errors.Is(err, apperror.ErrInsufficientFunds) {
			uc.logger.Info("Order rejected", zap.Int("user_id", u.ID), zap.Error(err))
		} else {
			uc.logger.Error("failed to place order", zap.Int("user_id", u.ID), zap.Error(err))
		}
		return nil, err
	}

	uc.metrics.ObserveOrder(o.TotalPrice)
	uc.logger.Info("Order placed",
		zap.Int("order_id", o.ID),
		zap.Int("user_id", debited.ID),
		zap.String("total", model.FormatMoney(o.TotalPrice)),
		zap.String("balance", model.FormatMoney(debited.Balance)),
	)

	// 3. Tell the session
	if observer != nil {
		observer.BalanceChanged(debited.ID, debited.Balance)
	}
	return o, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInsufficientFunds):
		return metrics.ReasonInsufficientFunds
	case errors.Is(err, apperror.ErrForbidden):
		return metrics.ReasonForbidden
	case errors.Is(err, apperror.ErrPersistence):
		return metrics.ReasonPersistence
	default:
		return metrics.ReasonInvalidCart
	}
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order %d", apperror.ErrNotFound, id)
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context) ([]model.Order, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *orderUseCase) ListUserOrders(ctx context.Context, userID int) ([]model.Order, error) {
	return uc.repo.FindByUser(ctx, userID)
}

func (uc *orderUseCase) ListOrdersByDate(ctx context.Context, date model.Date) ([]model.Order, error) {
	return uc.repo.FindByDate(ctx, date)
}

func (uc *orderUseCase) FilterOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	orders, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return order.Filter(orders, users, filters), nil
}

func (uc *orderUseCase) LineItemSummary(ctx context.Context, o *model.Order) (string, error) {
	meals, err := uc.meals.FindAll(ctx)
	if err != nil {
		return "", err
	}
	return order.Summary(o.LineItems, meals), nil
}

func (uc *orderUseCase) ExportOrders(ctx context.Context, input *dto.ExportOrdersInput) (int, error) {
	if input.Path == "" {
		return 0, fmt.Errorf("%w: export path is required", apperror.ErrInvalidInput)
	}

	orders, err := uc.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	users, err := uc.users.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	selected := order.Filter(orders, users, &input.Filters)
	if len(selected) == 0 {
		return 0, fmt.Errorf("%w: no orders to export", apperror.ErrNotFound)
	}

	meals, err := uc.meals.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	categories, err := uc.categories.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	doc := order.BuildExport(selected, users, meals, categories, uc.today())
	if err := store.WriteJSONFile(input.Path, doc); err != nil {
		uc.logger.Error("failed to export orders", zap.String("path", input.Path), zap.Error(err))
		return 0, err
	}

	uc.logger.Info("Orders exported", zap.String("path", input.Path), zap.Int("orders", doc.TotalOrders))
	return doc.TotalOrders, nil
}
