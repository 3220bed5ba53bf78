package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, user_id, type, status, file_path, version, review_comment, uploaded_at`

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de persistencia para documentos.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste un nuevo documento.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.UserID, doc.Type, doc.Status, doc.FilePath,
		doc.Version, doc.ReviewComment, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.UserID, &d.Type, &d.Status, &d.FilePath,
		&d.Version, &d.ReviewComment, &d.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanDocument(r.q.QueryRow(context.Background(), query, id))
}

// GetByUserAndType obtiene el documento vivo de (usuario, tipo).
func (r *DocumentRepo) GetByUserAndType(userID, tipo string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 AND type = $2`
	return r.scanDocument(r.q.QueryRow(context.Background(), query, userID, tipo))
}

// ListByUser lista los documentos del usuario ordenados por tipo.
func (r *DocumentRepo) ListByUser(userID string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY type ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.Type, &d.Status, &d.FilePath,
			&d.Version, &d.ReviewComment, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza el estado de revisión de un documento.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `UPDATE documents SET status = $2, review_comment = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, doc.ID, doc.Status, doc.ReviewComment)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete elimina un documento por ID.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// DeleteByUser elimina todos los documentos del usuario.
func (r *DocumentRepo) DeleteByUser(userID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	return nil
}
