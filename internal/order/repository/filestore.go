package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/shopspring/decimal"
)

type FileRepository struct {
	DB *store.Store
}

func NewFileRepository(db *store.Store) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) CreateWithDebit(ctx context.Context, o *model.Order) (*model.User, error) {
	var (
		debited model.User
		orderID int
		total   decimal.Decimal
	)
	err := r.DB.Update(ctx, func(d *store.Data) error {
		i := d.UserIndex(o.UserID)
		if i < 0 {
			return fmt.Errorf("%w: user %d", apperror.ErrNotFound, o.UserID)
		}
		u := &d.Users[i]
		if u.Role != model.RoleStudent {
			return fmt.Errorf("%w: only students can order", apperror.ErrForbidden)
		}
		total = order.Total(o.LineItems, d.Meals)
		if !u.Deduct(total) {
			return fmt.Errorf("%w: need %s, have %s", apperror.ErrInsufficientFunds,
				model.FormatMoney(total), model.FormatMoney(u.Balance))
		}

		orderID = d.NextID(store.KindOrder)
		placed := o.Clone()
		placed.ID = orderID
		placed.TotalPrice = total
		d.Orders = append(d.Orders, placed)
		debited = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.ID = orderID
	o.TotalPrice = total
	return &debited, nil
}

func (r *FileRepository) FindByID(ctx context.Context, id int) (*model.Order, error) {
	var out *model.Order
	err := r.DB.View(func(d *store.Data) error {
		if i := d.OrderIndex(id); i >= 0 {
			o := d.Orders[i].Clone()
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *FileRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	return r.collect(func(*model.Order) bool { return true })
}

func (r *FileRepository) FindByUser(ctx context.Context, userID int) ([]model.Order, error) {
	return r.collect(func(o *model.Order) bool { return o.UserID == userID })
}

func (r *FileRepository) FindByDate(ctx context.Context, date model.Date) ([]model.Order, error) {
	return r.collect(func(o *model.Order) bool { return o.Date == date })
}

func (r *FileRepository) collect(match func(*model.Order) bool) ([]model.Order, error) {
	out := []model.Order{}
	err := r.DB.View(func(d *store.Data) error {
		for i := range d.Orders {
			if match(&d.Orders[i]) {
				out = append(out, d.Orders[i].Clone())
			}
		}
		return nil
	})
	return out, err
}
