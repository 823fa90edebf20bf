package repository

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
)

type FileRepository struct {
	DB *store.Store
}

func NewFileRepository(db *store.Store) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) FindByID(ctx context.Context, id int) (*model.Category, error) {
	var out *model.Category
	err := r.DB.View(func(d *store.Data) error {
		if i := d.CategoryIndex(id); i >= 0 {
			c := d.Categories[i]
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *FileRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := r.DB.View(func(d *store.Data) error {
		out = append([]model.Category{}, d.Categories...)
		return nil
	})
	return out, err
}

// UpdateFunc applies fn to a copy of the category with id and stores the
// result in the same mutation. It returns (nil, nil) when id is unknown.
func (r *FileRepository) UpdateFunc(ctx context.Context, id int, fn func(*model.Category) error) (*model.Category, error) {
	var out *model.Category
	err := r.DB.Update(ctx, func(d *store.Data) error {
		i := d.CategoryIndex(id)
		if i < 0 {
			return nil
		}
		c := d.Categories[i]
		if err := fn(&c); err != nil {
			return err
		}
		c.ID = id
		d.Categories[i] = c
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
