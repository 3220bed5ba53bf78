package usecase

import (
	"math"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/checklist"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

// ProgresoUseCase agrega el avance de expedientes por plantel y la vista de
// usuarios sin plantel.
type ProgresoUseCase struct {
	userRepo      repository.UserRepository
	plantelRepo   repository.PlantelRepository
	checklistRepo repository.ChecklistRepository
	docRepo       repository.DocumentRepository
	sigRepo       repository.SignatureRepository
	minItems      int
}

// NewProgresoUseCase construye el caso de uso. minItems es el número mínimo
// de pasos del checklist para que un expediente pueda contar como completo.
func NewProgresoUseCase(
	userRepo repository.UserRepository,
	plantelRepo repository.PlantelRepository,
	checklistRepo repository.ChecklistRepository,
	docRepo repository.DocumentRepository,
	sigRepo repository.SignatureRepository,
	minItems int,
) *ProgresoUseCase {
	return &ProgresoUseCase{
		userRepo:      userRepo,
		plantelRepo:   plantelRepo,
		checklistRepo: checklistRepo,
		docRepo:       docRepo,
		sigRepo:       sigRepo,
		minItems:      minItems,
	}
}

// clasificar calcula el avance y la completitud del expediente de un usuario.
func (uc *ProgresoUseCase) clasificar(u *entity.User) (dto.UsuarioProgreso, bool, error) {
	items, err := uc.checklistRepo.ListByUser(u.ID)
	if err != nil {
		return dto.UsuarioProgreso{}, false, err
	}
	docs, err := uc.docRepo.ListByUser(u.ID)
	if err != nil {
		return dto.UsuarioProgreso{}, false, err
	}
	sigs, err := uc.sigRepo.ListByUser(u.ID)
	if err != nil {
		return dto.UsuarioProgreso{}, false, err
	}

	deref := func(list []*entity.ChecklistItem) []entity.ChecklistItem {
		out := make([]entity.ChecklistItem, 0, len(list))
		for _, it := range list {
			out = append(out, *it)
		}
		return out
	}
	derefDocs := func(list []*entity.Document) []entity.Document {
		out := make([]entity.Document, 0, len(list))
		for _, d := range list {
			out = append(out, *d)
		}
		return out
	}
	derefSigs := func(list []*entity.Signature) []entity.Signature {
		out := make([]entity.Signature, 0, len(list))
		for _, s := range list {
			out = append(out, *s)
		}
		return out
	}

	is := deref(items)
	completo := checklist.ExpedienteCompleto(is, derefDocs(docs), derefSigs(sigs), uc.minItems)
	p := checklist.UserProgress(is)
	return dto.UsuarioProgreso{
		UserID:   u.ID,
		Name:     u.Name,
		Role:     string(u.Role),
		Percent:  p.Percent,
		Completo: completo,
	}, completo, nil
}

// PorPlantel arma el detalle de avance de un plantel: sus candidatos y
// empleados activos clasificados uno a uno, ordenados por nombre.
func (uc *ProgresoUseCase) PorPlantel(ident auth.Identity, plantelID string) (*dto.ProgresoPlantelResponse, error) {
	p, err := uc.plantelRepo.GetByID(plantelID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !ident.AdministraPlantel(plantelID) {
		return nil, domain.ErrForbidden
	}
	return uc.detallePlantel(p, true)
}

func (uc *ProgresoUseCase) detallePlantel(p *entity.Plantel, conUsuarios bool) (*dto.ProgresoPlantelResponse, error) {
	usuarios, err := uc.userRepo.ListPersonalActivo(p.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProgresoPlantelResponse{PlantelID: p.ID, Name: p.Name}
	for _, u := range usuarios {
		up, completo, err := uc.clasificar(u)
		if err != nil {
			return nil, err
		}
		out.Total++
		if completo {
			out.Completos++
		}
		if conUsuarios {
			out.Usuarios = append(out.Usuarios, up)
		}
	}
	out.Percent = porcentaje(out.Completos, out.Total)
	return out, nil
}

// Global arma el rollup de todos los planteles visibles para la identidad,
// más los usuarios activos sin plantel (del más reciente al más antiguo).
func (uc *ProgresoUseCase) Global(ident auth.Identity) (*dto.ProgresoGlobalResponse, error) {
	planteles, err := uc.plantelRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.ProgresoGlobalResponse{
		Planteles:  []dto.ProgresoPlantelResponse{},
		SinPlantel: []dto.UserResponse{},
	}
	for _, p := range planteles {
		if !ident.AdministraPlantel(p.ID) {
			continue
		}
		d, err := uc.detallePlantel(p, false)
		if err != nil {
			return nil, err
		}
		out.Planteles = append(out.Planteles, *d)
	}
	sueltos, err := uc.userRepo.ListSinPlantel()
	if err != nil {
		return nil, err
	}
	for _, u := range sueltos {
		out.SinPlantel = append(out.SinPlantel, dto.NewUserResponse(u))
	}
	return out, nil
}

// porcentaje redondea 100*completos/total; 0 cuando total es 0.
func porcentaje(completos, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completos) / float64(total)))
}
