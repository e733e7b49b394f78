package dto

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128,password_strength"`
}

// LoginRequest represents the data needed to login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// VerifyEmailRequest carries the single-use token from the emailed link
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResendVerificationRequest asks for a fresh verification email
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// UpdateProfileRequest carries optional profile mutations; nil means
// "leave unchanged"
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,max=512"`
}

// ChangePasswordRequest is the authenticated password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,max=128"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128,password_strength"`
}
