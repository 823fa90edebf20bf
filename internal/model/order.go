package model

import "github.com/shopspring/decimal"

type LineItem struct {
	MealID   int `json:"mealId"`
	Quantity int `json:"quantity"`
}

// Order keeps the total computed at placement time. It is never recomputed from
// current meal prices.
type Order struct {
	ID         int             `json:"id"`
	UserID     int             `json:"userId"`
	Date       Date            `json:"date"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	LineItems  []LineItem      `json:"meals"`
}

// Clone returns a copy that shares no line item storage with o.
func (o Order) Clone() Order {
	c := o
	if o.LineItems != nil {
		c.LineItems = make([]LineItem, len(o.LineItems))
		copy(c.LineItems, o.LineItems)
	}
	return c
}
