package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
	"github.com/talentohumano/expediente-api/pkg/normalize"
)

// PuestoUseCase casos de uso del catálogo de puestos, incluida la importación
// masiva con deduplicación por nombre normalizado.
type PuestoUseCase struct {
	repo     repository.PuestoRepository
	userRepo repository.UserRepository
}

// NewPuestoUseCase construye el caso de uso.
func NewPuestoUseCase(repo repository.PuestoRepository, userRepo repository.UserRepository) *PuestoUseCase {
	return &PuestoUseCase{repo: repo, userRepo: userRepo}
}

// List lista el catálogo; con soloActivos filtra los desactivados.
func (uc *PuestoUseCase) List(soloActivos bool) (*dto.PuestoListResponse, error) {
	list, err := uc.repo.List(soloActivos)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PuestoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewPuestoResponse(p))
	}
	return &dto.PuestoListResponse{Items: items}, nil
}

// Create crea un puesto. Duplicado por llave normalizada → ErrDuplicate.
func (uc *PuestoUseCase) Create(in dto.CreatePuestoRequest) (*dto.PuestoResponse, error) {
	name := normalize.Clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	key := normalize.Key(name)
	existing, err := uc.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Puesto{
		ID:        uuid.New().String(),
		Name:      name,
		NameKey:   key,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	out := dto.NewPuestoResponse(p)
	return &out, nil
}

// Update renombra o activa/desactiva un puesto.
func (uc *PuestoUseCase) Update(id string, in dto.UpdatePuestoRequest) (*dto.PuestoResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := normalize.Clean(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		key := normalize.Key(name)
		if key != p.NameKey {
			other, err := uc.repo.GetByKey(key)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != p.ID {
				return nil, domain.ErrDuplicate
			}
		}
		p.Name = name
		p.NameKey = key
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	out := dto.NewPuestoResponse(p)
	return &out, nil
}

// Delete elimina un puesto. Si algún usuario lo tiene asignado no se borra:
// se desactiva y se devuelve desactivado=true.
func (uc *PuestoUseCase) Delete(id string) (desactivado bool, err error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, domain.ErrNotFound
	}
	enUso, err := uc.userRepo.ExisteConPuesto(p.Name)
	if err != nil {
		return false, err
	}
	if enUso {
		p.Active = false
		p.UpdatedAt = time.Now()
		return true, uc.repo.Update(p)
	}
	return false, uc.repo.Delete(id)
}

// Import importa una lista de nombres libres. En modo replace primero
// desactiva todo el catálogo. Por cada nombre normalizado: crea si no existe,
// reactiva/renombra si existe inactivo o con otra presentación, y no toca el
// resto. Repetir la misma importación en modo merge no produce cambios.
func (uc *PuestoUseCase) Import(in dto.ImportPuestosRequest) (*dto.ImportPuestosResponse, error) {
	if in.Modo != dto.ImportModoMerge && in.Modo != dto.ImportModoReplace {
		return nil, domain.ErrInvalidInput
	}
	out := &dto.ImportPuestosResponse{}
	if in.Modo == dto.ImportModoReplace {
		activos, err := uc.repo.List(true)
		if err != nil {
			return nil, err
		}
		out.Desactivados = len(activos)
		if err := uc.repo.DeactivateAll(); err != nil {
			return nil, err
		}
	}

	vistos := make(map[string]bool, len(in.Nombres))
	for _, raw := range in.Nombres {
		name := normalize.Clean(raw)
		if name == "" {
			continue
		}
		key := normalize.Key(name)
		if vistos[key] {
			continue // duplicado dentro de la propia lista
		}
		vistos[key] = true

		existing, err := uc.repo.GetByKey(key)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		switch {
		case existing == nil:
			p := &entity.Puesto{
				ID:        uuid.New().String(),
				Name:      name,
				NameKey:   key,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := uc.repo.Create(p); err != nil {
				return nil, err
			}
			out.Creados++
		case !existing.Active || existing.Name != name:
			existing.Active = true
			existing.Name = name
			existing.UpdatedAt = now
			if err := uc.repo.Update(existing); err != nil {
				return nil, err
			}
			out.Reactivados++
		default:
			out.SinCambio++
		}
	}
	return out, nil
}
