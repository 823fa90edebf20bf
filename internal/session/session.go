// Package session holds per-login state: who is logged in and, for students,
// the cart and the balance shown to them.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Session interface {
	ID() string
	User() model.User
}

// Start opens the session that matches u's role.
func Start(u *model.User, orders order.UseCase, log logger.ZapLogger) (Session, error) {
	switch u.Role {
	case model.RoleAdmin:
		return NewAdmin(u)
	case model.RoleStudent:
		return NewStudent(u, orders, log)
	default:
		return nil, fmt.Errorf("%w: unknown role %s", apperror.ErrInvalidInput, u.Role)
	}
}

type Admin struct {
	id   string
	user model.User
}

func NewAdmin(u *model.User) (*Admin, error) {
	if u.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: user %d is not an admin", apperror.ErrForbidden, u.ID)
	}
	return &Admin{id: uuid.New().String(), user: *u}, nil
}

func (a *Admin) ID() string       { return a.id }
func (a *Admin) User() model.User { return a.user }

// Student owns one cart and keeps the displayed balance in step with paid
// orders.
type Student struct {
	id     string
	orders order.UseCase
	logger logger.ZapLogger

	mu   sync.Mutex
	user model.User
	cart *order.Cart
}

func NewStudent(u *model.User, orders order.UseCase, log logger.ZapLogger) (*Student, error) {
	if u.Role != model.RoleStudent {
		return nil, fmt.Errorf("%w: user %d is not a student", apperror.ErrForbidden, u.ID)
	}
	id := uuid.New().String()
	return &Student{
		id:     id,
		orders: orders,
		logger: log.With(zap.String("session_id", id), zap.Int("user_id", u.ID)),
		user:   *u,
		cart:   order.NewCart(),
	}, nil
}

func (s *Student) ID() string { return s.id }

func (s *Student) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Student) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Balance
}

func (s *Student) Cart() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Student) AddToCart(mealID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Add(mealID, 1)
}

func (s *Student) RemoveFromCart(mealID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Remove(mealID)
}

func (s *Student) CartTotal(ctx context.Context) (decimal.Decimal, error) {
	return s.orders.Quote(ctx, s.Cart())
}

// PlaceOrder pays for the cart. The cart is emptied only when the order went
// through.
func (s *Student) PlaceOrder(ctx context.Context) (*model.Order, error) {
	s.mu.Lock()
	lines := s.cart.Lines()
	userID := s.user.ID
	s.mu.Unlock()

	o, err := s.orders.PlaceOrder(ctx, &dto.PlaceOrderInput{UserID: userID, Lines: lines}, s)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cart.Clear()
	s.mu.Unlock()
	return o, nil
}

func (s *Student) History(ctx context.Context) ([]model.Order, error) {
	return s.orders.ListUserOrders(ctx, s.User().ID)
}

// BalanceChanged implements order.BalanceObserver.
func (s *Student) BalanceChanged(userID int, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID != s.user.ID {
		return
	}
	s.user.Balance = balance
	s.logger.Debug("Balance updated", zap.String("balance", model.FormatMoney(balance)))
}
