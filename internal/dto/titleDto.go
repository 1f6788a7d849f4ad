package dto

// CreateTitleDTO for creating a title. Category and genres are given
// by slug; the read representation nests the full objects instead.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=150"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Genre       []string `json:"genre"`
}

// UpdateTitleDTO for partial updates; nil fields are left untouched
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=150"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}
