package repository

import "github.com/talentohumano/expediente-api/internal/domain/entity"

// PuestoRepository define el puerto de persistencia para el catálogo de puestos.
type PuestoRepository interface {
	Create(p *entity.Puesto) error
	GetByID(id string) (*entity.Puesto, error)
	// GetByKey busca por la forma normalizada del nombre.
	GetByKey(key string) (*entity.Puesto, error)
	Update(p *entity.Puesto) error
	Delete(id string) error
	// List lista el catálogo ordenado por nombre ascendente.
	List(soloActivos bool) ([]*entity.Puesto, error)
	// DeactivateAll desactiva todo el catálogo (modo replace de la importación).
	DeactivateAll() error
}
