package dto

// LoginRequest entrada para login con contraseña.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest credencial de Google Identity (One Tap / botón de Google).
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// RegisterRequest entrada para registro de un candidato.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	PlantelID *string `json:"plantel_id,omitempty"`
}

// LoginResponse salida con token de sesión (también se emite como cookie HTTP-only).
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ForgotPasswordRequest entrada para solicitar recuperación de contraseña.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest entrada para restablecer contraseña con un token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ImpersonateRequest entrada para que un superadmin asuma la identidad de un admin.
type ImpersonateRequest struct {
	AdminID string `json:"admin_id"`
}
