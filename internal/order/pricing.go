package order

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/shopspring/decimal"
)

func mealIndex(meals []model.Meal) map[int]model.Meal {
	idx := make(map[int]model.Meal, len(meals))
	for _, m := range meals {
		if _, dup := idx[m.ID]; !dup {
			idx[m.ID] = m
		}
	}
	return idx
}

// Total prices lines at the current menu prices. Lines whose meal no longer
// exists contribute nothing.
func Total(lines []model.LineItem, meals []model.Meal) decimal.Decimal {
	idx := mealIndex(meals)
	total := decimal.Zero
	for _, l := range lines {
		m, ok := idx[l.MealID]
		if !ok {
			continue
		}
		total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Summary renders lines as "Soup (x2), Bread (x1)", leaving out deleted meals.
func Summary(lines []model.LineItem, meals []model.Meal) string {
	idx := mealIndex(meals)
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		m, ok := idx[l.MealID]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (x%d)", m.Name, l.Quantity))
	}
	return strings.Join(parts, ", ")
}
