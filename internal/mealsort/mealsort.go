// Package mealsort orders meal lists for display. Every strategy is stable and
// returns a new slice; the input is never reordered.
package mealsort

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

type Kind int

const (
	// None keeps the input order.
	None Kind = iota
	ByName
	ByPriceAsc
	ByPriceDesc
)

var names = map[Kind]string{
	None:        "none",
	ByName:      "name",
	ByPriceAsc:  "price-asc",
	ByPriceDesc: "price-desc",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("mealsort(%d)", int(k))
}

// ParseKind maps a selector such as "price-desc" to its Kind. The empty string is None.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for k, name := range names {
		if name == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: unknown sort %q", apperror.ErrInvalidInput, s)
}

var comparators = map[Kind]func(a, b model.Meal) int{
	ByName: func(a, b model.Meal) int {
		return strings.Compare(a.Name, b.Name)
	},
	ByPriceAsc: func(a, b model.Meal) int {
		return a.Price.Cmp(b.Price)
	},
	ByPriceDesc: func(a, b model.Meal) int {
		return b.Price.Cmp(a.Price)
	},
}

// Sort returns a reordered copy of meals. Equal elements keep their input order.
func Sort(k Kind, meals []model.Meal) ([]model.Meal, error) {
	out := slices.Clone(meals)
	if k == None {
		return out, nil
	}
	cmp, ok := comparators[k]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %s", apperror.ErrInvalidInput, k)
	}
	slices.SortStableFunc(out, cmp)
	return out, nil
}
