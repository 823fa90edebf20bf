package order

import (
	"fmt"
	"slices"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

// Cart is a student's uncommitted selection. Lines keep the order in which
// meals were first added. A Cart is owned by one session and is not safe for
// concurrent use.
type Cart struct {
	lines []model.LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts quantity more of mealID in the cart, merging with an existing line.
func (c *Cart) Add(mealID, quantity int) error {
	if mealID <= 0 || quantity < 1 {
		return fmt.Errorf("%w: meal %d quantity %d", apperror.ErrInvalidInput, mealID, quantity)
	}
	for i := range c.lines {
		if c.lines[i].MealID == mealID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, model.LineItem{MealID: mealID, Quantity: quantity})
	return nil
}

// Remove takes one of mealID out of the cart and drops the line when it
// reaches zero. It reports whether the meal was in the cart.
func (c *Cart) Remove(mealID int) bool {
	for i := range c.lines {
		if c.lines[i].MealID != mealID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = slices.Delete(c.lines, i, i+1)
		}
		return true
	}
	return false
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []model.LineItem {
	return slices.Clone(c.lines)
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Clear() { c.lines = nil }
