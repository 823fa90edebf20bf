package dto

type UpdateCategoryInput struct {
	ID   int
	Name string
}
