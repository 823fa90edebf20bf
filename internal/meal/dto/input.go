package dto

import "github.com/shopspring/decimal"

type CreateMealInput struct {
	Name       string
	Price      decimal.Decimal
	CategoryID int
	ImagePath  string
}

type UpdateMealInput struct {
	ID         int
	Name       string
	Price      decimal.Decimal
	CategoryID int
	ImagePath  string
}
