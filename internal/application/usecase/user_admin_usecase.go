package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/checklist"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

// UserAdminUseCase operaciones administrativas sobre usuarios: ficha técnica,
// estatus, asignación de plantel, aprobación de candidatos y borrado con
// cascada manual. Toda operación recibe la identidad del solicitante y aplica
// el alcance por plantel.
type UserAdminUseCase struct {
	userRepo      repository.UserRepository
	plantelRepo   repository.PlantelRepository
	checklistRepo repository.ChecklistRepository
	docRepo       repository.DocumentRepository
	sigRepo       repository.SignatureRepository
	tx            ports.TxRunner
	files         ports.FileStore
	psico         ports.PsicometricosReader
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(
	userRepo repository.UserRepository,
	plantelRepo repository.PlantelRepository,
	checklistRepo repository.ChecklistRepository,
	docRepo repository.DocumentRepository,
	sigRepo repository.SignatureRepository,
	tx ports.TxRunner,
	files ports.FileStore,
	psico ports.PsicometricosReader,
) *UserAdminUseCase {
	return &UserAdminUseCase{
		userRepo:      userRepo,
		plantelRepo:   plantelRepo,
		checklistRepo: checklistRepo,
		docRepo:       docRepo,
		sigRepo:       sigRepo,
		tx:            tx,
		files:         files,
		psico:         psico,
	}
}

// alcance carga el usuario objetivo y verifica que la identidad pueda gestionarlo.
func (uc *UserAdminUseCase) alcance(ident auth.Identity, userID string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !ident.PuedeGestionarUsuario(u) {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

// List lista usuarios visibles para la identidad, paginados.
func (uc *UserAdminUseCase) List(ident auth.Identity, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.userRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		if !ident.PuedeGestionarUsuario(u) {
			continue
		}
		items = append(items, dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListAdmins lista las cuentas con rol admin, por nombre.
func (uc *UserAdminUseCase) ListAdmins() ([]dto.UserResponse, error) {
	list, err := uc.userRepo.ListByRole(entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.NewUserResponse(u))
	}
	return items, nil
}

// UpdateFicha actualiza los campos presentes de la ficha técnica.
func (uc *UserAdminUseCase) UpdateFicha(ident auth.Identity, userID string, in dto.FichaRequest) (*dto.UserResponse, error) {
	u, err := uc.alcance(ident, userID)
	if err != nil {
		return nil, err
	}
	if in.CURP != nil {
		u.CURP = *in.CURP
	}
	if in.RFC != nil {
		u.RFC = *in.RFC
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.HireDate != nil {
		if *in.HireDate == "" {
			u.HireDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *in.HireDate)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
			u.HireDate = &d
		}
	}
	if in.Puesto != nil {
		u.Puesto = *in.Puesto
	}
	if in.Horario != nil {
		u.Horario = *in.Horario
	}
	if in.Sueldo != nil {
		s, err := decimal.NewFromString(*in.Sueldo)
		if err != nil || s.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		u.Sueldo = s
	}
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(u); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// SetEstatus activa o desactiva una cuenta. Un admin no puede desactivarse a
// sí mismo; un superadmin sí puede.
func (uc *UserAdminUseCase) SetEstatus(ident auth.Identity, userID string, active bool) (*dto.UserResponse, error) {
	u, err := uc.alcance(ident, userID)
	if err != nil {
		return nil, err
	}
	if userID == ident.UserID && ident.Role != entity.RoleSuperadmin {
		return nil, domain.ErrAutoAccion
	}
	u.Active = active
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(u); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// SetPlantel asigna o quita el plantel de un usuario. Un admin solo puede
// mover usuarios hacia planteles que administra.
func (uc *UserAdminUseCase) SetPlantel(ident auth.Identity, userID string, plantelID *string) (*dto.UserResponse, error) {
	u, err := uc.alcance(ident, userID)
	if err != nil {
		return nil, err
	}
	if plantelID != nil {
		p, err := uc.plantelRepo.GetByID(*plantelID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if !ident.AdministraPlantel(*plantelID) {
			return nil, domain.ErrForbidden
		}
	}
	u.PlantelID = plantelID
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(u); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// Delete borra un usuario con cascada manual de sus dependientes en una sola
// transacción. Los archivos se borran después del commit; un archivo huérfano
// por un fallo a medias es aceptable, un registro huérfano no.
func (uc *UserAdminUseCase) Delete(ctx context.Context, ident auth.Identity, userID string) error {
	u, err := uc.alcance(ident, userID)
	if err != nil {
		return err
	}
	if userID == ident.UserID && ident.Role != entity.RoleSuperadmin {
		return domain.ErrAutoAccion
	}
	docs, err := uc.docRepo.ListByUser(userID)
	if err != nil {
		return err
	}

	err = uc.tx.RunBorradoUsuario(ctx, func(
		users repository.UserRepository,
		items repository.ChecklistRepository,
		documentos repository.DocumentRepository,
		firmas repository.SignatureRepository,
		tokens repository.ResetTokenRepository,
		planteles repository.PlantelRepository,
	) error {
		if err := items.DeleteByUser(userID); err != nil {
			return err
		}
		if err := documentos.DeleteByUser(userID); err != nil {
			return err
		}
		if err := firmas.DeleteByUser(userID); err != nil {
			return err
		}
		if err := tokens.DeleteByUser(userID); err != nil {
			return err
		}
		if u.Role == entity.RoleAdmin {
			asignados, err := planteles.PlantelesDeAdmin(userID)
			if err != nil {
				return err
			}
			for _, pid := range asignados {
				if err := planteles.UnassignAdmin(pid, userID); err != nil {
					return err
				}
			}
		}
		return users.Delete(userID)
	})
	if err != nil {
		return err
	}

	for _, d := range docs {
		if err := uc.files.Delete(ctx, d.FilePath); err != nil {
			log.Warn().Err(err).Str("path", d.FilePath).Msg("no se pudo borrar el archivo del documento")
		}
	}
	return nil
}

// Aprobar transiciona candidato→empleado. Requisito de esta variante: firma
// del contrato en estado terminal exitoso.
func (uc *UserAdminUseCase) Aprobar(ident auth.Identity, userID string) (*dto.UserResponse, error) {
	u, err := uc.alcance(ident, userID)
	if err != nil {
		return nil, err
	}
	if u.IsApproved {
		return nil, domain.ErrYaAprobado
	}
	list, err := uc.sigRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	sigs := make([]entity.Signature, 0, len(list))
	for _, s := range list {
		sigs = append(sigs, *s)
	}
	if !checklist.FirmaCompletada(sigs, entity.DocContrato) {
		return nil, fmt.Errorf("%w: contrato sin firmar", domain.ErrRequisitoFaltante)
	}
	return uc.marcarAprobado(u)
}

// AprobarExpediente transiciona candidato→empleado. Requisito de esta
// variante: documento de proyectivos aceptado.
func (uc *UserAdminUseCase) AprobarExpediente(ident auth.Identity, userID string) (*dto.UserResponse, error) {
	u, err := uc.alcance(ident, userID)
	if err != nil {
		return nil, err
	}
	if u.IsApproved {
		return nil, domain.ErrYaAprobado
	}
	list, err := uc.docRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	docs := make([]entity.Document, 0, len(list))
	for _, d := range list {
		docs = append(docs, *d)
	}
	if !checklist.DocumentoAceptado(docs, entity.DocProyectivos) {
		return nil, fmt.Errorf("%w: proyectivos sin aceptar", domain.ErrRequisitoFaltante)
	}
	return uc.marcarAprobado(u)
}

func (uc *UserAdminUseCase) marcarAprobado(u *entity.User) (*dto.UserResponse, error) {
	u.Role = entity.RoleEmpleado
	u.IsApproved = true
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(u); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// AprobarBulk aplica AprobarExpediente a cada usuario y reporta el resultado
// por usuario; un fallo no detiene al resto.
func (uc *UserAdminUseCase) AprobarBulk(ident auth.Identity, in dto.BulkApproveRequest) (*dto.BulkApproveResponse, error) {
	out := &dto.BulkApproveResponse{Resultados: make([]dto.BulkApproveResult, 0, len(in.UserIDs))}
	for _, id := range in.UserIDs {
		res := dto.BulkApproveResult{UserID: id}
		if _, err := uc.AprobarExpediente(ident, id); err != nil {
			res.Error = err.Error()
		} else {
			res.Aprobado = true
			out.Aprobados++
		}
		out.Resultados = append(out.Resultados, res)
	}
	return out, nil
}

// Psicometricos consulta en vivo los resultados del usuario en los dos
// sistemas heredados, cruzando por CURP.
func (uc *UserAdminUseCase) Psicometricos(ctx context.Context, ident auth.Identity, userID string) ([]dto.ResultadoPsicometrico, error) {
	u, err := uc.alcance(ident, userID)
	if err != nil {
		return nil, err
	}
	if u.CURP == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.psico.ResultadosPorCURP(ctx, u.CURP)
}
