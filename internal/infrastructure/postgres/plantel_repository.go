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

var _ repository.PlantelRepository = (*PlantelRepo)(nil)

// PlantelRepo implementación del puerto PlantelRepository sobre PostgreSQL.
type PlantelRepo struct {
	q Querier
}

// NewPlantelRepository construye el adaptador de persistencia para planteles.
func NewPlantelRepository(q Querier) *PlantelRepo {
	return &PlantelRepo{q: q}
}

// Create persiste un nuevo plantel.
func (r *PlantelRepo) Create(p *entity.Plantel) error {
	query := `
		INSERT INTO planteles (id, name, label, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Label, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plantel: %w", err)
	}
	return nil
}

// GetByID obtiene un plantel por ID.
func (r *PlantelRepo) GetByID(id string) (*entity.Plantel, error) {
	query := `SELECT id, name, label, description, created_at, updated_at FROM planteles WHERE id = $1`
	var p entity.Plantel
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Label, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plantel by id: %w", err)
	}
	return &p, nil
}

// Update actualiza un plantel.
func (r *PlantelRepo) Update(p *entity.Plantel) error {
	query := `UPDATE planteles SET name = $2, label = $3, description = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.Name, p.Label, p.Description, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update plantel: %w", err)
	}
	return nil
}

// Delete elimina un plantel por ID.
func (r *PlantelRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM planteles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plantel: %w", err)
	}
	return nil
}

// List lista todos los planteles ordenados por nombre ascendente.
func (r *PlantelRepo) List() ([]*entity.Plantel, error) {
	query := `SELECT id, name, label, description, created_at, updated_at FROM planteles ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list planteles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plantel
	for rows.Next() {
		var p entity.Plantel
		if err := rows.Scan(&p.ID, &p.Name, &p.Label, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plantel: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountUsuarios cuenta usuarios con plantel_id = id.
func (r *PlantelRepo) CountUsuarios(id string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM users WHERE plantel_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count usuarios de plantel: %w", err)
	}
	return n, nil
}

// CountAdmins cuenta asignaciones admin↔plantel del plantel.
func (r *PlantelRepo) CountAdmins(id string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM plantel_admins WHERE plantel_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count admins de plantel: %w", err)
	}
	return n, nil
}

// AssignAdmin crea la asignación admin↔plantel; repetirla no falla.
func (r *PlantelRepo) AssignAdmin(plantelID, userID string) error {
	query := `
		INSERT INTO plantel_admins (plantel_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (plantel_id, user_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, plantelID, userID)
	if err != nil {
		return fmt.Errorf("assign admin: %w", err)
	}
	return nil
}

// UnassignAdmin elimina la asignación admin↔plantel; quitar una inexistente no falla.
func (r *PlantelRepo) UnassignAdmin(plantelID, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM plantel_admins WHERE plantel_id = $1 AND user_id = $2`, plantelID, userID)
	if err != nil {
		return fmt.Errorf("unassign admin: %w", err)
	}
	return nil
}

// PlantelesDeAdmin devuelve los IDs de plantel asignados a un admin.
func (r *PlantelRepo) PlantelesDeAdmin(userID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT plantel_id FROM plantel_admins WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("planteles de admin: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan plantel_id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Asignaciones devuelve todas las filas admin↔plantel (para la matriz).
func (r *PlantelRepo) Asignaciones() ([]*entity.PlantelAdmin, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT plantel_id, user_id, created_at FROM plantel_admins`)
	if err != nil {
		return nil, fmt.Errorf("list asignaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.PlantelAdmin
	for rows.Next() {
		var a entity.PlantelAdmin
		if err := rows.Scan(&a.PlantelID, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asignacion: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
