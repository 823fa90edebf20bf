package dto

import "github.com/fekuna/omnipos-cafeteria-service/internal/model"

type PlaceOrderInput struct {
	UserID int
	Lines  []model.LineItem
}

type ExportOrdersInput struct {
	Path    string
	Filters OrderFilters
}
