package dto

import "github.com/shopspring/decimal"

type MealFilters struct {
	CategoryID  int              // 0 means any category
	MaxPrice    *decimal.Decimal // nil means no limit
	SearchQuery string           // case-insensitive substring of the name
	SortBy      string           // name, price-asc, price-desc
}
