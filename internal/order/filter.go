package order

import (
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order/dto"
)

// Filter keeps the orders matching f, in their original order.
//
// f.User matches an order when it parses as the order's user id, or when it is
// a case-insensitive substring of the ordering user's name.
func Filter(orders []model.Order, users []model.User, f *dto.OrderFilters) []model.Order {
	out := make([]model.Order, 0, len(orders))
	if f == nil {
		return append(out, orders...)
	}

	query := strings.TrimSpace(f.User)
	queryID, idErr := strconv.Atoi(query)
	lowered := strings.ToLower(query)

	names := make(map[int]string, len(users))
	for _, u := range users {
		if _, dup := names[u.ID]; !dup {
			names[u.ID] = u.Username
		}
	}

	for _, o := range orders {
		if !f.Date.IsZero() && o.Date != f.Date {
			continue
		}
		if query != "" {
			matched := idErr == nil && o.UserID == queryID
			if !matched {
				name, ok := names[o.UserID]
				matched = ok && strings.Contains(strings.ToLower(name), lowered)
			}
			if !matched {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}
