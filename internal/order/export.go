package order

import (
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order/dto"
)

// BuildExport denormalises orders for the admin export. Meals that no longer
// exist are left out of an order's meal list; the user and category objects
// are left out when the referenced entity is gone.
func BuildExport(orders []model.Order, users []model.User, meals []model.Meal, categories []model.Category, exportDate model.Date) *dto.ExportDocument {
	userIdx := make(map[int]model.User, len(users))
	for _, u := range users {
		if _, dup := userIdx[u.ID]; !dup {
			userIdx[u.ID] = u
		}
	}
	catIdx := make(map[int]model.Category, len(categories))
	for _, c := range categories {
		if _, dup := catIdx[c.ID]; !dup {
			catIdx[c.ID] = c
		}
	}
	mealIdx := mealIndex(meals)

	doc := &dto.ExportDocument{
		Orders:     make([]dto.ExportedOrder, 0, len(orders)),
		ExportDate: exportDate,
	}
	for _, o := range orders {
		eo := dto.ExportedOrder{
			ID:         o.ID,
			UserID:     o.UserID,
			Date:       o.Date,
			TotalPrice: o.TotalPrice,
			Meals:      []dto.ExportedMeal{},
		}
		if u, ok := userIdx[o.UserID]; ok {
			eo.User = &dto.ExportedUser{ID: u.ID, Username: u.Username}
		}
		for _, l := range o.LineItems {
			m, ok := mealIdx[l.MealID]
			if !ok {
				continue
			}
			em := dto.ExportedMeal{
				ID:       m.ID,
				Name:     m.Name,
				Price:    m.Price,
				Quantity: l.Quantity,
			}
			if c, ok := catIdx[m.CategoryID]; ok {
				em.Category = &dto.ExportedCategory{ID: c.ID, Name: c.Name}
			}
			eo.Meals = append(eo.Meals, em)
		}
		doc.Orders = append(doc.Orders, eo)
	}
	doc.TotalOrders = len(doc.Orders)
	return doc
}
