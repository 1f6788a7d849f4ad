package dto

// CreateUserDTO for admin-side user creation
type CreateUserDTO struct {
	Username  string `json:"username" binding:"required,max=32"`
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name" binding:"omitempty,max=32"`
	LastName  string `json:"last_name" binding:"omitempty,max=64"`
	Bio       string `json:"bio"`
	Role      string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateUserDTO for admin-side partial updates
type UpdateUserDTO struct {
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=32"`
	LastName  *string `json:"last_name" binding:"omitempty,max=64"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateMeDTO for users editing their own profile. Username, email and
// role deliberately have no place here.
type UpdateMeDTO struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=32"`
	LastName  *string `json:"last_name" binding:"omitempty,max=64"`
	Bio       *string `json:"bio"`
}
