package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Role is persisted as its integer value: 0 admin, 1 student.
type Role int

const (
	RoleAdmin Role = iota
	RoleStudent
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleStudent:
		return "student"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

type User struct {
	ID           int             `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"password"`
	Role         Role            `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
}

// Deduct takes amount off the balance. It refuses, leaving the user unchanged,
// when the balance would go negative or amount is negative.
func (u *User) Deduct(amount decimal.Decimal) bool {
	if amount.IsNegative() || u.Balance.LessThan(amount) {
		return false
	}
	u.Balance = u.Balance.Sub(amount)
	return true
}
