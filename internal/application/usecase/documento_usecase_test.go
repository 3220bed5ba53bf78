package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
)

type docEnv struct {
	uc        *usecase.DocumentoUseCase
	users     *memUserRepo
	checklist *memChecklistRepo
	docs      *memDocRepo
	sigs      *memSigRepo
	files     *memFiles
}

func newDocEnv(t *testing.T) *docEnv {
	t.Helper()
	users := newMemUserRepo()
	checklist := newMemChecklistRepo()
	docs := newMemDocRepo()
	sigs := newMemSigRepo()
	files := newMemFiles()
	require.NoError(t, users.Create(&entity.User{
		ID: "u1", Name: "Ana", Email: "ana@rh.mx",
		Role: entity.RoleCandidato, Active: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	uc := usecase.NewDocumentoUseCase(users, checklist, docs, sigs, files, 10)
	return &docEnv{uc: uc, users: users, checklist: checklist, docs: docs, sigs: sigs, files: files}
}

func candidato() auth.Identity {
	return auth.Identity{UserID: "u1", Email: "ana@rh.mx", Role: entity.RoleCandidato}
}

func pdfSubida(contenido string) usecase.Subida {
	return usecase.Subida{
		Filename:    "doc.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(contenido)),
		Reader:      strings.NewReader(contenido),
	}
}

func TestSubir_CreaDocumentoPendienteYPaso(t *testing.T) {
	env := newDocEnv(t)

	out, err := env.uc.Subir(context.Background(), candidato(), entity.DocCURP, pdfSubida("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, entity.DocPendiente, out.Status)
	assert.Equal(t, 1, out.Version)

	item, err := env.checklist.GetByUserAndType("u1", entity.DocCURP)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.False(t, item.Fulfilled, "una subida pendiente no cumple el paso")
	require.NotNil(t, item.DocumentID)
}

func TestSubir_TipoNoPermitido(t *testing.T) {
	env := newDocEnv(t)

	// El contrato no es de autoservicio; lo sube un admin como testigo.
	_, err := env.uc.Subir(context.Background(), candidato(), entity.DocContrato, pdfSubida("%PDF-1.4"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubir_RechazaNoPDF(t *testing.T) {
	env := newDocEnv(t)
	in := usecase.Subida{
		Filename:    "foto.png",
		ContentType: "image/png",
		Size:        10,
		Reader:      strings.NewReader("x"),
	}
	_, err := env.uc.Subir(context.Background(), candidato(), entity.DocCURP, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubir_ReemplazaPendienteYBorraArchivoAnterior(t *testing.T) {
	env := newDocEnv(t)
	ctx := context.Background()

	v1, err := env.uc.Subir(ctx, candidato(), entity.DocCURP, pdfSubida("version uno"))
	require.NoError(t, err)
	v2, err := env.uc.Subir(ctx, candidato(), entity.DocCURP, pdfSubida("version dos"))
	require.NoError(t, err)

	assert.Equal(t, 2, v2.Version)
	docs, _ := env.docs.ListByUser("u1")
	require.Len(t, docs, 1, "solo debe quedar un registro por (usuario, tipo)")
	assert.NotEqual(t, v1.ID, docs[0].ID)
	require.Len(t, env.files.borrados, 1, "el archivo reemplazado debe borrarse")
}

func TestSubir_AceptadoNoSeReemplazaPorAutoservicio(t *testing.T) {
	env := newDocEnv(t)
	ctx := context.Background()

	out, err := env.uc.Subir(ctx, candidato(), entity.DocCURP, pdfSubida("v1"))
	require.NoError(t, err)
	_, err = env.uc.Revisar(superadmin(), out.ID, entity.DocAceptado, "ok")
	require.NoError(t, err)

	_, err = env.uc.Subir(ctx, candidato(), entity.DocCURP, pdfSubida("v2"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSubirTestigo_AceptaYRegistraFirmaPresencial(t *testing.T) {
	env := newDocEnv(t)

	out, err := env.uc.SubirTestigo(context.Background(), superadmin(), "u1", entity.DocContrato, pdfSubida("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, entity.DocAceptado, out.Status)
	assert.Equal(t, "Firmado en presencia de personal RH", out.ReviewComment)

	item, _ := env.checklist.GetByUserAndType("u1", entity.DocContrato)
	require.NotNil(t, item)
	assert.True(t, item.Fulfilled)

	sig, _ := env.sigs.GetByUserAndType("u1", entity.DocContrato)
	require.NotNil(t, sig)
	assert.Equal(t, "presencial", sig.Provider)
	assert.Equal(t, entity.FirmaCompletado, sig.Status)
	assert.NotNil(t, sig.SignedAt)
}

func TestSubirTestigo_RequiereAlcanceSobreElUsuario(t *testing.T) {
	env := newDocEnv(t)
	pid := "pl2"
	u, _ := env.users.GetByID("u1")
	u.PlantelID = &pid
	require.NoError(t, env.users.Update(u))
	ident := auth.Identity{UserID: "a1", Role: entity.RoleAdmin, Planteles: []string{"pl1"}}

	_, err := env.uc.SubirTestigo(context.Background(), ident, "u1", entity.DocContrato, pdfSubida("%PDF-1.4"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubirFoto_AceptadaYActualizaPerfil(t *testing.T) {
	env := newDocEnv(t)
	in := usecase.Subida{
		Filename:    "perfil.jpg",
		ContentType: "image/jpeg",
		Size:        100,
		Reader:      strings.NewReader(strings.Repeat("x", 100)),
	}

	out, err := env.uc.SubirFoto(context.Background(), candidato(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.DocAceptado, out.Status)

	u, _ := env.users.GetByID("u1")
	assert.NotEmpty(t, u.PhotoPath)

	item, _ := env.checklist.GetByUserAndType("u1", entity.DocFoto)
	require.NotNil(t, item)
	assert.False(t, item.Required, "la foto no es un paso obligatorio")
	assert.True(t, item.Fulfilled)
}

func TestRevisar_RechazoDescumpleElPaso(t *testing.T) {
	env := newDocEnv(t)
	ctx := context.Background()
	out, err := env.uc.Subir(ctx, candidato(), entity.DocINE, pdfSubida("v1"))
	require.NoError(t, err)

	rev, err := env.uc.Revisar(superadmin(), out.ID, entity.DocRechazado, "ilegible")
	require.NoError(t, err)
	assert.Equal(t, entity.DocRechazado, rev.Status)
	assert.Equal(t, "ilegible", rev.ReviewComment)

	item, _ := env.checklist.GetByUserAndType("u1", entity.DocINE)
	assert.False(t, item.Fulfilled)
}

func TestRevisar_StatusInvalido(t *testing.T) {
	env := newDocEnv(t)
	_, err := env.uc.Revisar(superadmin(), "d1", "archivado", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArchivo_SoloPDFYConAlcance(t *testing.T) {
	env := newDocEnv(t)
	ctx := context.Background()
	out, err := env.uc.Subir(ctx, candidato(), entity.DocCURP, pdfSubida("contenido"))
	require.NoError(t, err)
	key := strings.TrimPrefix(out.FileURL, "/api/archivos/")

	// El dueño puede abrir su propio archivo.
	rc, err := env.uc.Archivo(ctx, candidato(), key)
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "contenido", string(b))

	// Otro candidato no.
	otro := auth.Identity{UserID: "u2", Role: entity.RoleCandidato}
	_, err = env.uc.Archivo(ctx, otro, key)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Extensión distinta a .pdf bloqueada aunque exista.
	_, err = env.uc.Archivo(ctx, candidato(), "u1/foto/x.jpg")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegistrarFirmaYWebhook_CumplenElPaso(t *testing.T) {
	env := newDocEnv(t)
	require.NoError(t, env.checklist.Upsert(&entity.ChecklistItem{
		ID: "c1", UserID: "u1", Type: entity.DocContrato, Required: true,
	}))

	sig, err := env.uc.RegistrarFirma(candidato(), entity.DocContrato, "ext-123")
	require.NoError(t, err)
	assert.Equal(t, entity.FirmaPendiente, sig.Status)

	err = env.uc.WebhookFirma(dto.WebhookFirmaRequest{ExternalID: "ext-123", Status: entity.FirmaCompletado})
	require.NoError(t, err)

	got, _ := env.sigs.GetByExternalID("ext-123")
	require.NotNil(t, got)
	assert.Equal(t, entity.FirmaCompletado, got.Status)
	assert.NotNil(t, got.SignedAt)

	item, _ := env.checklist.GetByUserAndType("u1", entity.DocContrato)
	assert.True(t, item.Fulfilled)
}

func TestRegistrarFirma_YaFirmadaEsConflicto(t *testing.T) {
	env := newDocEnv(t)
	now := time.Now()
	require.NoError(t, env.sigs.Create(&entity.Signature{
		ID: "s1", UserID: "u1", Type: entity.DocContrato,
		Status: entity.FirmaCompletado, SignedAt: &now,
	}))

	_, err := env.uc.RegistrarFirma(candidato(), entity.DocContrato, "ext-999")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestWebhookFirma_ExternalIDDesconocido(t *testing.T) {
	env := newDocEnv(t)
	err := env.uc.WebhookFirma(dto.WebhookFirmaRequest{ExternalID: "nope", Status: entity.FirmaCompletado})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
