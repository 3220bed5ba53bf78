package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

var _ repository.ChecklistRepository = (*ChecklistRepo)(nil)

// ChecklistRepo implementación del puerto ChecklistRepository sobre PostgreSQL.
type ChecklistRepo struct {
	q Querier
}

// NewChecklistRepository construye el adaptador de persistencia para el checklist.
func NewChecklistRepository(q Querier) *ChecklistRepo {
	return &ChecklistRepo{q: q}
}

// Upsert crea el registro de (usuario, tipo) o actualiza el existente. El
// índice único sobre (user_id, type) garantiza un solo registro vivo por par.
func (r *ChecklistRepo) Upsert(item *entity.ChecklistItem) error {
	query := `
		INSERT INTO checklist_items (id, user_id, type, required, admin_only, fulfilled, document_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, type) DO UPDATE SET
			required = EXCLUDED.required,
			admin_only = EXCLUDED.admin_only,
			fulfilled = EXCLUDED.fulfilled,
			document_id = EXCLUDED.document_id,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UserID, item.Type, item.Required, item.AdminOnly,
		item.Fulfilled, item.DocumentID, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert checklist item: %w", err)
	}
	return nil
}

// GetByUserAndType obtiene el paso de (usuario, tipo).
func (r *ChecklistRepo) GetByUserAndType(userID, tipo string) (*entity.ChecklistItem, error) {
	query := `
		SELECT id, user_id, type, required, admin_only, fulfilled, document_id, created_at, updated_at
		FROM checklist_items WHERE user_id = $1 AND type = $2`
	var it entity.ChecklistItem
	err := r.q.QueryRow(context.Background(), query, userID, tipo).Scan(
		&it.ID, &it.UserID, &it.Type, &it.Required, &it.AdminOnly,
		&it.Fulfilled, &it.DocumentID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checklist item: %w", err)
	}
	return &it, nil
}

// ListByUser lista los pasos del usuario ordenados por tipo.
func (r *ChecklistRepo) ListByUser(userID string) ([]*entity.ChecklistItem, error) {
	query := `
		SELECT id, user_id, type, required, admin_only, fulfilled, document_id, created_at, updated_at
		FROM checklist_items WHERE user_id = $1 ORDER BY type ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChecklistItem
	for rows.Next() {
		var it entity.ChecklistItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Type, &it.Required, &it.AdminOnly,
			&it.Fulfilled, &it.DocumentID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan checklist item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// DeleteByUserAndType elimina el paso de (usuario, tipo).
func (r *ChecklistRepo) DeleteByUserAndType(userID, tipo string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM checklist_items WHERE user_id = $1 AND type = $2`, userID, tipo)
	if err != nil {
		return fmt.Errorf("delete checklist item: %w", err)
	}
	return nil
}

// DeleteByUser elimina todos los pasos del usuario.
func (r *ChecklistRepo) DeleteByUser(userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM checklist_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete checklist items: %w", err)
	}
	return nil
}
