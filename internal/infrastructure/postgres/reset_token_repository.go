package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

var _ repository.ResetTokenRepository = (*ResetTokenRepo)(nil)

// ResetTokenRepo implementación del puerto ResetTokenRepository sobre PostgreSQL.
type ResetTokenRepo struct {
	q Querier
}

// NewResetTokenRepository construye el adaptador de persistencia para tokens de recuperación.
func NewResetTokenRepository(q Querier) *ResetTokenRepo {
	return &ResetTokenRepo{q: q}
}

// Create persiste un nuevo token.
func (r *ResetTokenRepo) Create(t *entity.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.UserID, t.Token, t.ExpiresAt, t.Used, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// GetByToken obtiene un token por su valor.
func (r *ResetTokenRepo) GetByToken(token string) (*entity.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, used, created_at
		FROM password_reset_tokens WHERE token = $1`
	var t entity.PasswordResetToken
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reset token: %w", err)
	}
	return &t, nil
}

// DeleteByUser elimina los tokens previos del usuario.
func (r *ResetTokenRepo) DeleteByUser(userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM password_reset_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete reset tokens: %w", err)
	}
	return nil
}

// MarkUsed marca un token como usado.
func (r *ResetTokenRepo) MarkUsed(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE password_reset_tokens SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	return nil
}
