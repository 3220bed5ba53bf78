package repository

import "github.com/talentohumano/expediente-api/internal/domain/entity"

// ResetTokenRepository define el puerto de persistencia para los tokens de
// recuperación de contraseña.
type ResetTokenRepository interface {
	Create(t *entity.PasswordResetToken) error
	GetByToken(token string) (*entity.PasswordResetToken, error)
	// DeleteByUser elimina los tokens previos del usuario (emitir invalida).
	DeleteByUser(userID string) error
	MarkUsed(id string) error
}
