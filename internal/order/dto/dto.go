package dto

import (
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/shopspring/decimal"
)

// OrderFilters narrows the admin order list. Zero fields match everything.
type OrderFilters struct {
	Date model.Date
	// User is a user id or part of a username.
	User string
}

// ExportDocument is the order export shape. It is written once and never read back.
type ExportDocument struct {
	Orders      []ExportedOrder `json:"orders"`
	TotalOrders int             `json:"totalOrders"`
	ExportDate  model.Date      `json:"exportDate"`
}

type ExportedOrder struct {
	ID         int             `json:"id"`
	UserID     int             `json:"userId"`
	Date       model.Date      `json:"date"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	User       *ExportedUser   `json:"user,omitempty"`
	Meals      []ExportedMeal  `json:"meals"`
}

type ExportedUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type ExportedMeal struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	Price    decimal.Decimal   `json:"price"`
	Quantity int               `json:"quantity"`
	Category *ExportedCategory `json:"category,omitempty"`
}

type ExportedCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
