package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

var _ repository.PuestoRepository = (*PuestoRepo)(nil)

const puestoColumns = `id, name, name_key, active, created_at, updated_at`

// PuestoRepo implementación del puerto PuestoRepository sobre PostgreSQL.
type PuestoRepo struct {
	q Querier
}

// NewPuestoRepository construye el adaptador de persistencia para puestos.
func NewPuestoRepository(q Querier) *PuestoRepo {
	return &PuestoRepo{q: q}
}

// Create persiste un nuevo puesto.
func (r *PuestoRepo) Create(p *entity.Puesto) error {
	query := `INSERT INTO puestos (` + puestoColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.NameKey, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert puesto: %w", err)
	}
	return nil
}

func (r *PuestoRepo) scanPuesto(row pgx.Row) (*entity.Puesto, error) {
	var p entity.Puesto
	err := row.Scan(&p.ID, &p.Name, &p.NameKey, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan puesto: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un puesto por ID.
func (r *PuestoRepo) GetByID(id string) (*entity.Puesto, error) {
	query := `SELECT ` + puestoColumns + ` FROM puestos WHERE id = $1`
	return r.scanPuesto(r.q.QueryRow(context.Background(), query, id))
}

// GetByKey busca por la forma normalizada del nombre.
func (r *PuestoRepo) GetByKey(key string) (*entity.Puesto, error) {
	query := `SELECT ` + puestoColumns + ` FROM puestos WHERE name_key = $1`
	return r.scanPuesto(r.q.QueryRow(context.Background(), query, key))
}

// Update actualiza un puesto.
func (r *PuestoRepo) Update(p *entity.Puesto) error {
	query := `UPDATE puestos SET name = $2, name_key = $3, active = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.Name, p.NameKey, p.Active, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update puesto: %w", err)
	}
	return nil
}

// Delete elimina un puesto por ID.
func (r *PuestoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM puestos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete puesto: %w", err)
	}
	return nil
}

// List lista el catálogo ordenado por nombre ascendente.
func (r *PuestoRepo) List(soloActivos bool) ([]*entity.Puesto, error) {
	query := `SELECT ` + puestoColumns + ` FROM puestos ORDER BY name ASC`
	if soloActivos {
		query = `SELECT ` + puestoColumns + ` FROM puestos WHERE active ORDER BY name ASC`
	}
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list puestos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Puesto
	for rows.Next() {
		var p entity.Puesto
		if err := rows.Scan(&p.ID, &p.Name, &p.NameKey, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan puesto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeactivateAll desactiva todo el catálogo (modo replace de la importación).
func (r *PuestoRepo) DeactivateAll() error {
	_, err := r.q.Exec(context.Background(), `UPDATE puestos SET active = FALSE WHERE active`)
	if err != nil {
		return fmt.Errorf("deactivate puestos: %w", err)
	}
	return nil
}
