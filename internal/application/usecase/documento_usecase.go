package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/checklist"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

// Límites de subida.
const (
	MaxDocBytes  = 20 << 20 // 20MB para documentos PDF
	MaxFotoBytes = 5 << 20  // 5MB para la foto de perfil
)

// ComentarioTestigo es el comentario fijo de los documentos subidos por un
// admin como testigo de una firma presencial.
const ComentarioTestigo = "Firmado en presencia de personal RH"

// Subida describe un archivo recibido en una petición de carga.
type Subida struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DocumentoUseCase flujo de documentos del expediente: subidas, revisión,
// firmas electrónicas y consulta de estado.
type DocumentoUseCase struct {
	userRepo      repository.UserRepository
	checklistRepo repository.ChecklistRepository
	docRepo       repository.DocumentRepository
	sigRepo       repository.SignatureRepository
	files         ports.FileStore
	minItems      int
}

// NewDocumentoUseCase construye el caso de uso.
func NewDocumentoUseCase(
	userRepo repository.UserRepository,
	checklistRepo repository.ChecklistRepository,
	docRepo repository.DocumentRepository,
	sigRepo repository.SignatureRepository,
	files ports.FileStore,
	minItems int,
) *DocumentoUseCase {
	return &DocumentoUseCase{
		userRepo:      userRepo,
		checklistRepo: checklistRepo,
		docRepo:       docRepo,
		sigRepo:       sigRepo,
		files:         files,
		minItems:      minItems,
	}
}

// Estado arma el estado completo del expediente de un usuario.
func (uc *DocumentoUseCase) Estado(ident auth.Identity, userID string) (*dto.EstadoDocumentosResponse, error) {
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

	itemsPtr, err := uc.checklistRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	docsPtr, err := uc.docRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	sigsPtr, err := uc.sigRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ChecklistItem, 0, len(itemsPtr))
	itemsOut := make([]dto.ChecklistItemResponse, 0, len(itemsPtr))
	for _, it := range itemsPtr {
		items = append(items, *it)
		itemsOut = append(itemsOut, dto.NewChecklistItemResponse(it))
	}
	docs := make([]entity.Document, 0, len(docsPtr))
	docsOut := make([]dto.DocumentoResponse, 0, len(docsPtr))
	for _, d := range docsPtr {
		docs = append(docs, *d)
		docsOut = append(docsOut, dto.NewDocumentoResponse(d))
	}
	sigs := make([]entity.Signature, 0, len(sigsPtr))
	sigsOut := make([]dto.FirmaResponse, 0, len(sigsPtr))
	for _, s := range sigsPtr {
		sigs = append(sigs, *s)
		sigsOut = append(sigsOut, dto.NewFirmaResponse(s))
	}

	p := checklist.UserProgress(items)
	return &dto.EstadoDocumentosResponse{
		User:       dto.NewUserResponse(u),
		Checklist:  itemsOut,
		Documentos: docsOut,
		Firmas:     sigsOut,
		Progreso: dto.ProgresoResponse{
			Done:     p.Done,
			Total:    p.Total,
			Percent:  p.Percent,
			Completo: p.Complete,
		},
		ProyectivosAceptado: checklist.DocumentoAceptado(docs, entity.DocProyectivos),
		ExpedienteCompleto:  checklist.ExpedienteCompleto(items, docs, sigs, uc.minItems),
	}, nil
}

// Subir procesa la subida de un documento del propio usuario. Solo PDF, hasta
// 20MB, y solo para los tipos de autoservicio. Queda pendiente de revisión.
func (uc *DocumentoUseCase) Subir(ctx context.Context, ident auth.Identity, tipo string, in Subida) (*dto.DocumentoResponse, error) {
	if !entity.TiposSubida[tipo] {
		return nil, domain.ErrInvalidInput
	}
	if err := validarPDF(in); err != nil {
		return nil, err
	}
	doc, err := uc.guardar(ctx, ident.UserID, tipo, in, ".pdf", entity.DocPendiente, "", false)
	if err != nil {
		return nil, err
	}
	out := dto.NewDocumentoResponse(doc)
	return &out, nil
}

// SubirTestigo procesa la subida de un contrato o reglamento firmado en
// presencia de un admin: el documento queda aceptado de inmediato, el paso
// del checklist cumplido y se registra la firma presencial.
func (uc *DocumentoUseCase) SubirTestigo(ctx context.Context, ident auth.Identity, userID, tipo string, in Subida) (*dto.DocumentoResponse, error) {
	if !entity.TiposTestigo[tipo] {
		return nil, domain.ErrInvalidInput
	}
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
	if err := validarPDF(in); err != nil {
		return nil, err
	}
	doc, err := uc.guardar(ctx, userID, tipo, in, ".pdf", entity.DocAceptado, ComentarioTestigo, true)
	if err != nil {
		return nil, err
	}
	if err := uc.registrarFirmaPresencial(userID, tipo); err != nil {
		return nil, err
	}
	out := dto.NewDocumentoResponse(doc)
	return &out, nil
}

// SubirFoto procesa la foto de perfil: JPEG o PNG hasta 5MB, aceptada de
// inmediato.
func (uc *DocumentoUseCase) SubirFoto(ctx context.Context, ident auth.Identity, in Subida) (*dto.DocumentoResponse, error) {
	var ext string
	switch in.ContentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	default:
		return nil, fmt.Errorf("%w: la foto debe ser JPEG o PNG", domain.ErrInvalidInput)
	}
	if in.Size <= 0 || in.Size > MaxFotoBytes {
		return nil, fmt.Errorf("%w: la foto no debe exceder 5MB", domain.ErrInvalidInput)
	}
	doc, err := uc.guardar(ctx, ident.UserID, entity.DocFoto, in, ext, entity.DocAceptado, "", true)
	if err != nil {
		return nil, err
	}
	u, err := uc.userRepo.GetByID(ident.UserID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		u.PhotoPath = doc.FilePath
		u.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(u); err != nil {
			return nil, err
		}
	}
	out := dto.NewDocumentoResponse(doc)
	return &out, nil
}

// guardar persiste el archivo y el registro, reemplazando cualquier registro
// previo del mismo (usuario, tipo). Hay una ventana estrecha si dos subidas
// del mismo par corren a la vez; se acepta en lugar de bloquear.
func (uc *DocumentoUseCase) guardar(ctx context.Context, userID, tipo string, in Subida, ext, status, comentario string, cumplido bool) (*entity.Document, error) {
	version := 1
	prev, err := uc.docRepo.GetByUserAndType(userID, tipo)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		// Un documento ya aceptado no se reemplaza por autoservicio; la foto
		// y las subidas con testigo sí se renuevan.
		if prev.Status == entity.DocAceptado && status == entity.DocPendiente {
			return nil, domain.ErrConflict
		}
		version = prev.Version + 1
		if err := uc.docRepo.Delete(prev.ID); err != nil {
			return nil, err
		}
		if err := uc.files.Delete(ctx, prev.FilePath); err != nil {
			log.Warn().Err(err).Str("path", prev.FilePath).Msg("no se pudo borrar el archivo reemplazado")
		}
	}

	key := path.Join(userID, tipo, uuid.New().String()+ext)
	if err := uc.files.Save(ctx, key, in.Reader, in.ContentType); err != nil {
		return nil, fmt.Errorf("guardar archivo: %w", err)
	}

	now := time.Now()
	doc := &entity.Document{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          tipo,
		Status:        status,
		FilePath:      key,
		Version:       version,
		ReviewComment: comentario,
		UploadedAt:    now,
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}

	item, err := uc.checklistRepo.GetByUserAndType(userID, tipo)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = &entity.ChecklistItem{
			ID:        uuid.New().String(),
			UserID:    userID,
			Type:      tipo,
			Required:  tipo != entity.DocFoto,
			AdminOnly: tipo == entity.DocProyectivos,
			CreatedAt: now,
		}
	}
	item.Fulfilled = cumplido
	item.DocumentID = &doc.ID
	item.UpdatedAt = now
	if err := uc.checklistRepo.Upsert(item); err != nil {
		return nil, err
	}
	return doc, nil
}

// registrarFirmaPresencial deja la firma del paso en estado terminal, como si
// el proveedor la hubiera completado, para las firmas hechas en papel.
func (uc *DocumentoUseCase) registrarFirmaPresencial(userID, tipo string) error {
	now := time.Now()
	sig, err := uc.sigRepo.GetByUserAndType(userID, tipo)
	if err != nil {
		return err
	}
	if sig == nil {
		sig = &entity.Signature{
			ID:        uuid.New().String(),
			UserID:    userID,
			Type:      tipo,
			Provider:  "presencial",
			CreatedAt: now,
		}
		sig.Status = entity.FirmaCompletado
		sig.SignedAt = &now
		sig.UpdatedAt = now
		return uc.sigRepo.Create(sig)
	}
	sig.Status = entity.FirmaCompletado
	sig.Provider = "presencial"
	sig.SignedAt = &now
	sig.UpdatedAt = now
	return uc.sigRepo.Update(sig)
}

// Revisar acepta o rechaza un documento pendiente y sincroniza el paso del
// checklist.
func (uc *DocumentoUseCase) Revisar(ident auth.Identity, docID, status, comentario string) (*dto.DocumentoResponse, error) {
	if status != entity.DocAceptado && status != entity.DocRechazado {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.docRepo.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	u, err := uc.userRepo.GetByID(doc.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !ident.PuedeGestionarUsuario(u) {
		return nil, domain.ErrForbidden
	}

	doc.Status = status
	doc.ReviewComment = comentario
	if err := uc.docRepo.Update(doc); err != nil {
		return nil, err
	}

	item, err := uc.checklistRepo.GetByUserAndType(doc.UserID, doc.Type)
	if err != nil {
		return nil, err
	}
	if item != nil {
		item.Fulfilled = status == entity.DocAceptado
		item.UpdatedAt = time.Now()
		if err := uc.checklistRepo.Upsert(item); err != nil {
			return nil, err
		}
	}
	out := dto.NewDocumentoResponse(doc)
	return &out, nil
}

// Archivo abre un archivo protegido. Solo extensión .pdf, y solo si la
// identidad puede gestionar al dueño (el primer segmento de la llave).
func (uc *DocumentoUseCase) Archivo(ctx context.Context, ident auth.Identity, key string) (io.ReadCloser, error) {
	key = path.Clean(strings.TrimPrefix(key, "/"))
	if strings.HasPrefix(key, "..") || path.IsAbs(key) {
		return nil, domain.ErrInvalidInput
	}
	if !strings.HasSuffix(strings.ToLower(key), ".pdf") {
		return nil, domain.ErrForbidden
	}
	ownerID, _, ok := strings.Cut(key, "/")
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	owner, err := uc.userRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	if !ident.PuedeGestionarUsuario(owner) {
		return nil, domain.ErrForbidden
	}
	return uc.files.Open(ctx, key)
}

// RegistrarFirma crea la transacción de firma del propio usuario para un paso
// firmable, ligada a la sesión del widget del proveedor.
func (uc *DocumentoUseCase) RegistrarFirma(ident auth.Identity, tipo, externalID string) (*dto.FirmaResponse, error) {
	if !entity.TiposTestigo[tipo] {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	sig, err := uc.sigRepo.GetByUserAndType(ident.UserID, tipo)
	if err != nil {
		return nil, err
	}
	if sig != nil && sig.Firmada() {
		return nil, domain.ErrConflict
	}
	if sig == nil {
		sig = &entity.Signature{
			ID:         uuid.New().String(),
			UserID:     ident.UserID,
			Type:       tipo,
			Status:     entity.FirmaPendiente,
			Provider:   "mifiel",
			ExternalID: externalID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.sigRepo.Create(sig); err != nil {
			return nil, err
		}
	} else {
		sig.Status = entity.FirmaPendiente
		sig.Provider = "mifiel"
		sig.ExternalID = externalID
		sig.UpdatedAt = now
		if err := uc.sigRepo.Update(sig); err != nil {
			return nil, err
		}
	}
	out := dto.NewFirmaResponse(sig)
	return &out, nil
}

// WebhookFirma aplica el cambio de estado reportado por el proveedor y, si la
// firma quedó en estado terminal exitoso, cumple el paso del checklist.
func (uc *DocumentoUseCase) WebhookFirma(in dto.WebhookFirmaRequest) error {
	sig, err := uc.sigRepo.GetByExternalID(in.ExternalID)
	if err != nil {
		return err
	}
	if sig == nil {
		return domain.ErrNotFound
	}
	switch in.Status {
	case entity.FirmaPendiente, entity.FirmaFirmado, entity.FirmaCompletado, entity.FirmaError:
	default:
		return domain.ErrInvalidInput
	}
	now := time.Now()
	sig.Status = in.Status
	sig.UpdatedAt = now
	if sig.Firmada() && sig.SignedAt == nil {
		sig.SignedAt = &now
	}
	if err := uc.sigRepo.Update(sig); err != nil {
		return err
	}
	if !sig.Firmada() {
		return nil
	}
	item, err := uc.checklistRepo.GetByUserAndType(sig.UserID, sig.Type)
	if err != nil {
		return err
	}
	if item != nil && !item.Fulfilled {
		item.Fulfilled = true
		item.UpdatedAt = now
		return uc.checklistRepo.Upsert(item)
	}
	return nil
}

// validarPDF valida tipo MIME, extensión y tamaño de una subida de documento.
func validarPDF(in Subida) error {
	if in.ContentType != "application/pdf" {
		return fmt.Errorf("%w: el documento debe ser PDF", domain.ErrInvalidInput)
	}
	if !strings.HasSuffix(strings.ToLower(in.Filename), ".pdf") {
		return fmt.Errorf("%w: el archivo debe tener extensión .pdf", domain.ErrInvalidInput)
	}
	if in.Size <= 0 || in.Size > MaxDocBytes {
		return fmt.Errorf("%w: el documento no debe exceder 20MB", domain.ErrInvalidInput)
	}
	return nil
}
