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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, role, active, is_approved, plantel_id,
	curp, rfc, address, hire_date, puesto, horario, sueldo, photo_path, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Usable con pool o tx (Querier).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Active,
		user.IsApproved, user.PlantelID, user.CURP, user.RFC, user.Address, user.HireDate,
		user.Puesto, user.Horario, user.Sueldo, user.PhotoPath, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Active,
		&u.IsApproved, &u.PlantelID, &u.CURP, &u.RFC, &u.Address, &u.HireDate,
		&u.Puesto, &u.Horario, &u.Sueldo, &u.PhotoPath, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanUser(r.q.QueryRow(context.Background(), query, email))
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, role = $5, active = $6,
			is_approved = $7, plantel_id = $8, curp = $9, rfc = $10, address = $11,
			hire_date = $12, puesto = $13, horario = $14, sueldo = $15, photo_path = $16,
			updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Active,
		user.IsApproved, user.PlantelID, user.CURP, user.RFC, user.Address, user.HireDate,
		user.Puesto, user.Horario, user.Sueldo, user.PhotoPath, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) queryUsers(query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Active,
			&u.IsApproved, &u.PlantelID, &u.CURP, &u.RFC, &u.Address, &u.HireDate,
			&u.Puesto, &u.Horario, &u.Sueldo, &u.PhotoPath, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// List lista usuarios con paginación, del más reciente al más antiguo.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryUsers(query, limit, offset)
}

// ListByRole lista usuarios por rol, ordenados por nombre ascendente.
func (r *UserRepo) ListByRole(role entity.Role) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY name ASC`
	return r.queryUsers(query, role)
}

// ListPersonalActivo lista candidatos y empleados activos ordenados por
// nombre; plantelID vacío significa todos los planteles.
func (r *UserRepo) ListPersonalActivo(plantelID string) ([]*entity.User, error) {
	if plantelID == "" {
		query := `SELECT ` + userColumns + ` FROM users
			WHERE role IN ('candidato', 'empleado') AND active ORDER BY name ASC`
		return r.queryUsers(query)
	}
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role IN ('candidato', 'empleado') AND active AND plantel_id = $1 ORDER BY name ASC`
	return r.queryUsers(query, plantelID)
}

// ListSinPlantel lista candidatos y empleados activos sin plantel, del más
// reciente al más antiguo.
func (r *UserRepo) ListSinPlantel() ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role IN ('candidato', 'empleado') AND active AND plantel_id IS NULL
		ORDER BY created_at DESC`
	return r.queryUsers(query)
}

// ExisteConPuesto indica si algún usuario tiene asignado el puesto con ese nombre.
func (r *UserRepo) ExisteConPuesto(nombre string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE puesto = $1)`, nombre).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("check puesto en uso: %w", err)
	}
	return existe, nil
}
