package dto

import "github.com/shopspring/decimal"

type LoginInput struct {
	Username string
	Password string
}

type RegisterInput struct {
	Username string
	Password string
}

// UpdateUserInput changes only the fields that are set.
type UpdateUserInput struct {
	ID       int
	Password *string
	Balance  *decimal.Decimal
}
