package repository

import "github.com/talentohumano/expediente-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.User, error)
	// ListByRole lista usuarios por rol, ordenados por nombre ascendente.
	ListByRole(role entity.Role) ([]*entity.User, error)
	// ListPersonalActivo lista candidatos y empleados activos ordenados por
	// nombre; plantelID vacío significa todos los planteles.
	ListPersonalActivo(plantelID string) ([]*entity.User, error)
	// ListSinPlantel lista candidatos y empleados activos sin plantel,
	// del más reciente al más antiguo.
	ListSinPlantel() ([]*entity.User, error)
	// ExisteConPuesto indica si algún usuario tiene asignado el puesto con ese nombre.
	ExisteConPuesto(nombre string) (bool, error)
}
