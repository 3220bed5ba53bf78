package usecase_test

import (
	"context"
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

type adminEnv struct {
	uc        *usecase.UserAdminUseCase
	users     *memUserRepo
	planteles *memPlantelRepo
	checklist *memChecklistRepo
	docs      *memDocRepo
	sigs      *memSigRepo
	files     *memFiles
}

func newAdminEnv() *adminEnv {
	users := newMemUserRepo()
	planteles := newMemPlantelRepo(users)
	checklist := newMemChecklistRepo()
	docs := newMemDocRepo()
	sigs := newMemSigRepo()
	files := newMemFiles()
	tx := &fakeTx{
		users: users, checklist: checklist, docs: docs,
		sigs: sigs, tokens: newMemTokenRepo(), planteles: planteles,
	}
	uc := usecase.NewUserAdminUseCase(users, planteles, checklist, docs, sigs, tx, files, &fakePsico{})
	return &adminEnv{uc: uc, users: users, planteles: planteles, checklist: checklist, docs: docs, sigs: sigs, files: files}
}

func superadmin() auth.Identity {
	return auth.Identity{UserID: "sa1", Email: "sa@rh.mx", Role: entity.RoleSuperadmin}
}

func bulkReq(ids ...string) dto.BulkApproveRequest {
	return dto.BulkApproveRequest{UserIDs: ids}
}

func seedCandidato(t *testing.T, env *adminEnv, id string) {
	t.Helper()
	require.NoError(t, env.users.Create(&entity.User{
		ID: id, Name: "Candidato " + id, Email: id + "@rh.mx",
		Role: entity.RoleCandidato, Active: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func TestAprobar_SinFirmaDeContratoFalla(t *testing.T) {
	env := newAdminEnv()
	seedCandidato(t, env, "u1")

	_, err := env.uc.Aprobar(superadmin(), "u1")
	assert.ErrorIs(t, err, domain.ErrRequisitoFaltante)

	u, _ := env.users.GetByID("u1")
	assert.Equal(t, entity.RoleCandidato, u.Role)
	assert.False(t, u.IsApproved)
}

func TestAprobar_ConContratoFirmadoPromueve(t *testing.T) {
	env := newAdminEnv()
	seedCandidato(t, env, "u1")
	now := time.Now()
	require.NoError(t, env.sigs.Create(&entity.Signature{
		ID: "s1", UserID: "u1", Type: entity.DocContrato,
		Status: entity.FirmaCompletado, Provider: "mifiel", SignedAt: &now,
	}))

	out, err := env.uc.Aprobar(superadmin(), "u1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleEmpleado), out.Role)
	assert.True(t, out.IsApproved)
}

func TestAprobar_YaAprobadoEsConflicto(t *testing.T) {
	env := newAdminEnv()
	require.NoError(t, env.users.Create(&entity.User{
		ID: "u1", Name: "Ana", Role: entity.RoleEmpleado, Active: true, IsApproved: true,
	}))

	_, err := env.uc.Aprobar(superadmin(), "u1")
	assert.ErrorIs(t, err, domain.ErrYaAprobado)
}

func TestAprobarExpediente_RequiereProyectivosAceptados(t *testing.T) {
	env := newAdminEnv()
	seedCandidato(t, env, "u1")
	require.NoError(t, env.docs.Create(&entity.Document{
		ID: "d1", UserID: "u1", Type: entity.DocProyectivos, Status: entity.DocPendiente,
	}))

	_, err := env.uc.AprobarExpediente(superadmin(), "u1")
	assert.ErrorIs(t, err, domain.ErrRequisitoFaltante)

	require.NoError(t, env.docs.Update(&entity.Document{
		ID: "d1", UserID: "u1", Type: entity.DocProyectivos, Status: entity.DocAceptado,
	}))
	out, err := env.uc.AprobarExpediente(superadmin(), "u1")
	require.NoError(t, err)
	assert.True(t, out.IsApproved)
}

func TestAprobarBulk_UnFalloNoDetieneElResto(t *testing.T) {
	env := newAdminEnv()
	seedCandidato(t, env, "u1")
	seedCandidato(t, env, "u2")
	require.NoError(t, env.docs.Create(&entity.Document{
		ID: "d2", UserID: "u2", Type: entity.DocProyectivos, Status: entity.DocAceptado,
	}))

	out, err := env.uc.AprobarBulk(superadmin(), bulkReq("u1", "u2", "inexistente"))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Aprobados)
	require.Len(t, out.Resultados, 3)
	assert.False(t, out.Resultados[0].Aprobado)
	assert.True(t, out.Resultados[1].Aprobado)
	assert.False(t, out.Resultados[2].Aprobado)
	assert.NotEmpty(t, out.Resultados[2].Error)
}

func TestSetEstatus_AdminNoSeDesactivaASiMismo(t *testing.T) {
	env := newAdminEnv()
	require.NoError(t, env.users.Create(&entity.User{
		ID: "a1", Name: "Rosa", Role: entity.RoleAdmin, Active: true,
	}))
	ident := auth.Identity{UserID: "a1", Role: entity.RoleAdmin}

	_, err := env.uc.SetEstatus(ident, "a1", false)
	assert.ErrorIs(t, err, domain.ErrAutoAccion)
}

func TestSetPlantel_AdminSoloHaciaSusPlanteles(t *testing.T) {
	env := newAdminEnv()
	seedPlantel(t, env.planteles, "pl1", "Centro")
	seedPlantel(t, env.planteles, "pl2", "Norte")
	seedCandidato(t, env, "u1")
	ident := auth.Identity{UserID: "a1", Role: entity.RoleAdmin, Planteles: []string{"pl1"}}

	pid := "pl2"
	_, err := env.uc.SetPlantel(ident, "u1", &pid)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	pid = "pl1"
	out, err := env.uc.SetPlantel(ident, "u1", &pid)
	require.NoError(t, err)
	require.NotNil(t, out.PlantelID)
	assert.Equal(t, "pl1", *out.PlantelID)
}

func TestDelete_CascadaBorraDependientesYArchivos(t *testing.T) {
	env := newAdminEnv()
	seedCandidato(t, env, "u1")
	require.NoError(t, env.checklist.Upsert(&entity.ChecklistItem{
		ID: "c1", UserID: "u1", Type: entity.DocCURP, Required: true,
	}))
	require.NoError(t, env.docs.Create(&entity.Document{
		ID: "d1", UserID: "u1", Type: entity.DocCURP, Status: entity.DocPendiente,
		FilePath: "u1/curp/x.pdf",
	}))
	require.NoError(t, env.sigs.Create(&entity.Signature{
		ID: "s1", UserID: "u1", Type: entity.DocContrato, Status: entity.FirmaPendiente,
	}))

	require.NoError(t, env.uc.Delete(context.Background(), superadmin(), "u1"))

	u, _ := env.users.GetByID("u1")
	assert.Nil(t, u)
	items, _ := env.checklist.ListByUser("u1")
	assert.Empty(t, items)
	docs, _ := env.docs.ListByUser("u1")
	assert.Empty(t, docs)
	sigs, _ := env.sigs.ListByUser("u1")
	assert.Empty(t, sigs)
	assert.Contains(t, env.files.borrados, "u1/curp/x.pdf")
}

func TestDelete_AdminBorraAdminDeOtroPlantelFalla(t *testing.T) {
	env := newAdminEnv()
	pid := "pl2"
	require.NoError(t, env.users.Create(&entity.User{
		ID: "u1", Name: "Ana", Role: entity.RoleCandidato, Active: true, PlantelID: &pid,
	}))
	ident := auth.Identity{UserID: "a1", Role: entity.RoleAdmin, Planteles: []string{"pl1"}}

	err := env.uc.Delete(context.Background(), ident, "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
