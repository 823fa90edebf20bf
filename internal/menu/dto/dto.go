package dto

import "github.com/fekuna/omnipos-cafeteria-service/internal/model"

// Document is the menu exchange file. It carries no users or orders.
type Document struct {
	Categories []model.Category `json:"categories"`
	Meals      []model.Meal     `json:"meals"`
}

type ImportResult struct {
	CategoriesAdded   int
	CategoriesSkipped int
	MealsAdded        int
	MealsUpdated      int
}
