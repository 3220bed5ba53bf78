package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

// PlantelUseCase casos de uso CRUD de planteles y de la matriz de asignación
// admin↔plantel.
type PlantelUseCase struct {
	repo     repository.PlantelRepository
	userRepo repository.UserRepository
}

// NewPlantelUseCase construye el caso de uso.
func NewPlantelUseCase(repo repository.PlantelRepository, userRepo repository.UserRepository) *PlantelUseCase {
	return &PlantelUseCase{repo: repo, userRepo: userRepo}
}

// Create crea un plantel.
func (uc *PlantelUseCase) Create(in dto.CreatePlantelRequest) (*dto.PlantelResponse, error) {
	now := time.Now()
	p := &entity.Plantel{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Label:       in.Label,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	out := dto.NewPlantelResponse(p)
	return &out, nil
}

// Update actualiza los campos presentes de un plantel.
func (uc *PlantelUseCase) Update(id string, in dto.UpdatePlantelRequest) (*dto.PlantelResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Label != nil {
		p.Label = *in.Label
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	out := dto.NewPlantelResponse(p)
	return &out, nil
}

// Delete elimina un plantel. Bloqueado mientras existan usuarios o
// asignaciones de admin que lo referencien; nunca elimina en cascada.
func (uc *PlantelUseCase) Delete(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	usuarios, err := uc.repo.CountUsuarios(id)
	if err != nil {
		return err
	}
	admins, err := uc.repo.CountAdmins(id)
	if err != nil {
		return err
	}
	if usuarios > 0 || admins > 0 {
		return domain.ErrPlantelEnUso
	}
	return uc.repo.Delete(id)
}

// List lista los planteles ordenados por nombre.
func (uc *PlantelUseCase) List() (*dto.PlantelListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlantelResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewPlantelResponse(p))
	}
	return &dto.PlantelListResponse{Items: items}, nil
}

// AssignAdmin crea la relación admin↔plantel. Valida que el usuario exista y
// tenga rol admin.
func (uc *PlantelUseCase) AssignAdmin(plantelID, userID string) error {
	p, err := uc.repo.GetByID(plantelID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	u, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if u.Role != entity.RoleAdmin {
		return domain.ErrInvalidInput
	}
	return uc.repo.AssignAdmin(plantelID, userID)
}

// UnassignAdmin elimina la relación admin↔plantel.
func (uc *PlantelUseCase) UnassignAdmin(plantelID, userID string) error {
	p, err := uc.repo.GetByID(plantelID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.UnassignAdmin(plantelID, userID)
}

// ToggleMatrix aplica un cambio de la matriz: asigna o desasigna según el flag.
func (uc *PlantelUseCase) ToggleMatrix(in dto.MatrixToggleRequest) error {
	if in.Asignado {
		return uc.AssignAdmin(in.PlantelID, in.AdminID)
	}
	return uc.UnassignAdmin(in.PlantelID, in.AdminID)
}

// Matrix arma la vista planteles × admins con sus asignaciones.
func (uc *PlantelUseCase) Matrix() (*dto.MatrixResponse, error) {
	planteles, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	admins, err := uc.userRepo.ListByRole(entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	asignaciones, err := uc.repo.Asignaciones()
	if err != nil {
		return nil, err
	}

	out := &dto.MatrixResponse{
		Planteles:    make([]dto.PlantelResponse, 0, len(planteles)),
		Admins:       make([]dto.UserResponse, 0, len(admins)),
		Asignaciones: make(map[string][]string, len(planteles)),
	}
	for _, p := range planteles {
		out.Planteles = append(out.Planteles, dto.NewPlantelResponse(p))
		out.Asignaciones[p.ID] = []string{}
	}
	for _, a := range admins {
		out.Admins = append(out.Admins, dto.NewUserResponse(a))
	}
	for _, pa := range asignaciones {
		out.Asignaciones[pa.PlantelID] = append(out.Asignaciones[pa.PlantelID], pa.UserID)
	}
	return out, nil
}
