package model

// DefaultCategoryNames are seeded with ids 1..3 on first run.
var DefaultCategoryNames = []string{"Breakfast", "Lunch", "Snack"}

const UnknownCategoryName = "Unknown category"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
