package model

import "github.com/shopspring/decimal"

type Meal struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int             `json:"categoryId"`
	ImagePath  string          `json:"imagePath"` // local file, never checked for existence
}
