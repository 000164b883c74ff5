package models

// SignupRequest is the body of POST /api/v1/auth/signup.
// The role of a freshly signed-up account is always "user"; it cannot be
// chosen by the caller.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body of POST /api/v1/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of PATCH /api/v1/auth/reset-password/{token}.
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// UpdatePasswordRequest is the body of PATCH /api/v1/auth/update-password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	PasswordConfirm string `json:"password_confirm"`
}

// UpdateMeRequest is the body of PATCH /api/v1/users/me. Only these two
// fields may be changed through the profile endpoint; password changes go
// through /api/v1/auth/update-password.
type UpdateMeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
