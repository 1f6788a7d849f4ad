package dto

// CreateCategoryDTO for creating a category. Slug is optional and is
// derived from the name when omitted.
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=32"`
	Slug string `json:"slug" binding:"omitempty,max=50"`
}

// CreateGenreDTO for creating a genre
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=32"`
	Slug string `json:"slug" binding:"omitempty,max=25"`
}
