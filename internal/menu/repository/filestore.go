package repository

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/menu/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
)

type FileRepository struct {
	DB *store.Store
}

func NewFileRepository(db *store.Store) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) Snapshot(ctx context.Context) (*dto.Document, error) {
	var doc *dto.Document
	err := r.DB.View(func(d *store.Data) error {
		doc = &dto.Document{
			Categories: append([]model.Category{}, d.Categories...),
			Meals:      append([]model.Meal{}, d.Meals...),
		}
		return nil
	})
	return doc, err
}

func (r *FileRepository) Merge(ctx context.Context, doc *dto.Document) (*dto.ImportResult, error) {
	var res dto.ImportResult
	err := r.DB.Update(ctx, func(d *store.Data) error {
		res = dto.ImportResult{}

		for _, c := range doc.Categories {
			if d.CategoryIndex(c.ID) >= 0 {
				res.CategoriesSkipped++
				continue
			}
			d.Categories = append(d.Categories, c)
			d.Reserve(store.KindCategory, c.ID)
			res.CategoriesAdded++
		}

		for _, m := range doc.Meals {
			if i := d.MealIndex(m.ID); i >= 0 {
				d.Meals[i] = m
				res.MealsUpdated++
			} else {
				d.Meals = append(d.Meals, m)
				res.MealsAdded++
			}
			d.Reserve(store.KindMeal, m.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
