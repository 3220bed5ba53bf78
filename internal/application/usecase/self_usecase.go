package usecase

import (
	"regexp"
	"strings"
	"time"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

var (
	curpRx  = regexp.MustCompile(`^[A-Z]{4}\d{6}[HM][A-Z]{5}[A-Z0-9]\d$`)
	rfcRx   = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z0-9]{3}$`)
	emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// SelfUseCase operaciones del propio usuario sobre su cuenta.
type SelfUseCase struct {
	userRepo    repository.UserRepository
	plantelRepo repository.PlantelRepository
}

// NewSelfUseCase construye el caso de uso.
func NewSelfUseCase(userRepo repository.UserRepository, plantelRepo repository.PlantelRepository) *SelfUseCase {
	return &SelfUseCase{userRepo: userRepo, plantelRepo: plantelRepo}
}

func (uc *SelfUseCase) propio(ident auth.Identity) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ident.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *SelfUseCase) Me(ident auth.Identity) (*dto.UserResponse, error) {
	u, err := uc.propio(ident)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// UpdateEmail cambia el email propio, verificando unicidad.
func (uc *SelfUseCase) UpdateEmail(ident auth.Identity, in dto.UpdateEmailRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !emailRx.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.propio(ident)
	if err != nil {
		return nil, err
	}
	if email != u.Email {
		existing, err := uc.userRepo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		u.Email = email
		u.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(u); err != nil {
			return nil, err
		}
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// UpdateIdentificadores cambia CURP y RFC propios, validados por expresión regular.
func (uc *SelfUseCase) UpdateIdentificadores(ident auth.Identity, in dto.IdentificadoresRequest) (*dto.UserResponse, error) {
	curp := strings.ToUpper(strings.TrimSpace(in.CURP))
	rfc := strings.ToUpper(strings.TrimSpace(in.RFC))
	if curp != "" && !curpRx.MatchString(curp) {
		return nil, domain.ErrInvalidInput
	}
	if rfc != "" && !rfcRx.MatchString(rfc) {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.propio(ident)
	if err != nil {
		return nil, err
	}
	if curp != "" {
		u.CURP = curp
	}
	if rfc != "" {
		u.RFC = rfc
	}
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(u); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// UpdatePlantel cambia el plantel propio; el plantel debe existir.
func (uc *SelfUseCase) UpdatePlantel(ident auth.Identity, in dto.AsignarPlantelRequest) (*dto.UserResponse, error) {
	u, err := uc.propio(ident)
	if err != nil {
		return nil, err
	}
	if in.PlantelID != nil {
		p, err := uc.plantelRepo.GetByID(*in.PlantelID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
	}
	u.PlantelID = in.PlantelID
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(u); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}
