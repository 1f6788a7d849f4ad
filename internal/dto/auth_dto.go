package dto

// Data Transfer Objects for the signup and token endpoints

// SignupRequest: payload for requesting a confirmation code
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=32"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse echoes the validated pair back to the caller
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a JWT
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=32"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: issued access token plus the rotating refresh token
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest: payload for rotating the token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
