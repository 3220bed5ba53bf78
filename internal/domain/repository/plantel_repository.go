package repository

import "github.com/talentohumano/expediente-api/internal/domain/entity"

// PlantelRepository define el puerto de persistencia para Plantel y sus
// asignaciones de administradores.
type PlantelRepository interface {
	Create(p *entity.Plantel) error
	GetByID(id string) (*entity.Plantel, error)
	Update(p *entity.Plantel) error
	Delete(id string) error
	// List lista todos los planteles ordenados por nombre ascendente.
	List() ([]*entity.Plantel, error)
	// CountUsuarios cuenta usuarios con plantel_id = id.
	CountUsuarios(id string) (int, error)
	// CountAdmins cuenta asignaciones admin↔plantel del plantel.
	CountAdmins(id string) (int, error)

	AssignAdmin(plantelID, userID string) error
	UnassignAdmin(plantelID, userID string) error
	// PlantelesDeAdmin devuelve los IDs de plantel asignados a un admin.
	PlantelesDeAdmin(userID string) ([]string, error)
	// Asignaciones devuelve todas las filas admin↔plantel (para la matriz).
	Asignaciones() ([]*entity.PlantelAdmin, error)
}
