package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

var _ repository.SignatureRepository = (*SignatureRepo)(nil)

const signatureColumns = `id, user_id, type, status, provider, external_id, signed_at, created_at, updated_at`

// SignatureRepo implementación del puerto SignatureRepository sobre PostgreSQL.
type SignatureRepo struct {
	q Querier
}

// NewSignatureRepository construye el adaptador de persistencia para firmas.
func NewSignatureRepository(q Querier) *SignatureRepo {
	return &SignatureRepo{q: q}
}

// Create persiste una nueva transacción de firma.
func (r *SignatureRepo) Create(sig *entity.Signature) error {
	query := `
		INSERT INTO signatures (` + signatureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sig.ID, sig.UserID, sig.Type, sig.Status, sig.Provider,
		sig.ExternalID, sig.SignedAt, sig.CreatedAt, sig.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert signature: %w", err)
	}
	return nil
}

func (r *SignatureRepo) scanSignature(row pgx.Row) (*entity.Signature, error) {
	var s entity.Signature
	err := row.Scan(&s.ID, &s.UserID, &s.Type, &s.Status, &s.Provider,
		&s.ExternalID, &s.SignedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan signature: %w", err)
	}
	return &s, nil
}

// GetByExternalID obtiene una firma por el ID de la sesión en el proveedor.
func (r *SignatureRepo) GetByExternalID(externalID string) (*entity.Signature, error) {
	query := `SELECT ` + signatureColumns + ` FROM signatures WHERE external_id = $1 LIMIT 1`
	return r.scanSignature(r.q.QueryRow(context.Background(), query, externalID))
}

// GetByUserAndType obtiene la firma de (usuario, tipo).
func (r *SignatureRepo) GetByUserAndType(userID, tipo string) (*entity.Signature, error) {
	query := `SELECT ` + signatureColumns + ` FROM signatures WHERE user_id = $1 AND type = $2`
	return r.scanSignature(r.q.QueryRow(context.Background(), query, userID, tipo))
}

// ListByUser lista las firmas del usuario ordenadas por tipo.
func (r *SignatureRepo) ListByUser(userID string) ([]*entity.Signature, error) {
	query := `SELECT ` + signatureColumns + ` FROM signatures WHERE user_id = $1 ORDER BY type ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list signatures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Signature
	for rows.Next() {
		var s entity.Signature
		if err := rows.Scan(&s.ID, &s.UserID, &s.Type, &s.Status, &s.Provider,
			&s.ExternalID, &s.SignedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza el estado de una firma.
func (r *SignatureRepo) Update(sig *entity.Signature) error {
	query := `
		UPDATE signatures SET status = $2, provider = $3, external_id = $4, signed_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sig.ID, sig.Status, sig.Provider, sig.ExternalID, sig.SignedAt, sig.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update signature: %w", err)
	}
	return nil
}

// DeleteByUser elimina todas las firmas del usuario.
func (r *SignatureRepo) DeleteByUser(userID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM signatures WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete signatures: %w", err)
	}
	return nil
}
