package entity

import "time"

// PasswordResetToken es un token de un solo uso para recuperar contraseña.
// Emitir uno nuevo elimina los anteriores del mismo usuario.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Vigente indica si el token puede usarse en el instante dado.
func (t PasswordResetToken) Vigente(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
