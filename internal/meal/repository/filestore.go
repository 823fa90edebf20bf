package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
)

type FileRepository struct {
	DB *store.Store
}

func NewFileRepository(db *store.Store) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) NextID(ctx context.Context) int {
	return r.DB.NextID(store.KindMeal)
}

func (r *FileRepository) Create(ctx context.Context, m *model.Meal) error {
	return r.DB.Update(ctx, func(d *store.Data) error {
		if d.MealIndex(m.ID) >= 0 {
			return fmt.Errorf("%w: meal %d already exists", apperror.ErrConflict, m.ID)
		}
		d.Meals = append(d.Meals, *m)
		d.Reserve(store.KindMeal, m.ID)
		return nil
	})
}

func (r *FileRepository) FindByID(ctx context.Context, id int) (*model.Meal, error) {
	var out *model.Meal
	err := r.DB.View(func(d *store.Data) error {
		if i := d.MealIndex(id); i >= 0 {
			m := d.Meals[i]
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *FileRepository) FindAll(ctx context.Context) ([]model.Meal, error) {
	var out []model.Meal
	err := r.DB.View(func(d *store.Data) error {
		out = append([]model.Meal{}, d.Meals...)
		return nil
	})
	return out, err
}

// UpdateFunc applies fn to a copy of the meal with id and stores the result
// in the same mutation. It returns (nil, nil) when id is unknown.
func (r *FileRepository) UpdateFunc(ctx context.Context, id int, fn func(*model.Meal) error) (*model.Meal, error) {
	var out *model.Meal
	err := r.DB.Update(ctx, func(d *store.Data) error {
		i := d.MealIndex(id)
		if i < 0 {
			return nil
		}
		m := d.Meals[i]
		if err := fn(&m); err != nil {
			return err
		}
		m.ID = id
		d.Meals[i] = m
		out = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the meal only. Orders that reference it are left as they are.
func (r *FileRepository) Delete(ctx context.Context, id int) (bool, error) {
	found := false
	err := r.DB.Update(ctx, func(d *store.Data) error {
		if i := d.MealIndex(id); i >= 0 {
			d.Meals = append(d.Meals[:i], d.Meals[i+1:]...)
			found = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
