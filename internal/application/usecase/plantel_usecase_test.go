package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
)

func newPlantelUC() (*usecase.PlantelUseCase, *memPlantelRepo, *memUserRepo) {
	users := newMemUserRepo()
	planteles := newMemPlantelRepo(users)
	return usecase.NewPlantelUseCase(planteles, users), planteles, users
}

func seedPlantel(t *testing.T, repo *memPlantelRepo, id, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, repo.Create(&entity.Plantel{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}))
}

func TestPlantelDelete_BloqueadoConUsuarios(t *testing.T) {
	uc, planteles, users := newPlantelUC()
	seedPlantel(t, planteles, "pl1", "Centro")
	pid := "pl1"
	require.NoError(t, users.Create(&entity.User{
		ID: "u1", Name: "Ana", Role: entity.RoleCandidato, Active: true, PlantelID: &pid,
	}))

	err := uc.Delete("pl1")
	assert.ErrorIs(t, err, domain.ErrPlantelEnUso)

	p, _ := planteles.GetByID("pl1")
	assert.NotNil(t, p, "el plantel en uso no debe borrarse")
}

func TestPlantelDelete_BloqueadoConAdminsAsignados(t *testing.T) {
	uc, planteles, _ := newPlantelUC()
	seedPlantel(t, planteles, "pl1", "Centro")
	require.NoError(t, planteles.AssignAdmin("pl1", "admin1"))

	err := uc.Delete("pl1")
	assert.ErrorIs(t, err, domain.ErrPlantelEnUso)
}

func TestPlantelDelete_VacioSeElimina(t *testing.T) {
	uc, planteles, _ := newPlantelUC()
	seedPlantel(t, planteles, "pl1", "Centro")

	require.NoError(t, uc.Delete("pl1"))
	p, _ := planteles.GetByID("pl1")
	assert.Nil(t, p)
}

func TestPlantelAssignAdmin_RechazaRolNoAdmin(t *testing.T) {
	uc, planteles, users := newPlantelUC()
	seedPlantel(t, planteles, "pl1", "Centro")
	require.NoError(t, users.Create(&entity.User{
		ID: "u1", Name: "Ana", Role: entity.RoleCandidato, Active: true,
	}))

	err := uc.AssignAdmin("pl1", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlantelMatrix_IncluyeAsignaciones(t *testing.T) {
	uc, planteles, users := newPlantelUC()
	seedPlantel(t, planteles, "pl1", "Centro")
	seedPlantel(t, planteles, "pl2", "Norte")
	require.NoError(t, users.Create(&entity.User{
		ID: "a1", Name: "Rosa", Role: entity.RoleAdmin, Active: true,
	}))
	require.NoError(t, uc.AssignAdmin("pl1", "a1"))

	m, err := uc.Matrix()
	require.NoError(t, err)
	assert.Len(t, m.Planteles, 2)
	assert.Len(t, m.Admins, 1)
	assert.Equal(t, []string{"a1"}, m.Asignaciones["pl1"])
	assert.Empty(t, m.Asignaciones["pl2"])
}

func TestPlantelToggleMatrix_AsignaYDesasigna(t *testing.T) {
	uc, planteles, users := newPlantelUC()
	seedPlantel(t, planteles, "pl1", "Centro")
	require.NoError(t, users.Create(&entity.User{
		ID: "a1", Name: "Rosa", Role: entity.RoleAdmin, Active: true,
	}))

	require.NoError(t, uc.ToggleMatrix(dto.MatrixToggleRequest{PlantelID: "pl1", AdminID: "a1", Asignado: true}))
	ids, _ := planteles.PlantelesDeAdmin("a1")
	assert.Equal(t, []string{"pl1"}, ids)

	require.NoError(t, uc.ToggleMatrix(dto.MatrixToggleRequest{PlantelID: "pl1", AdminID: "a1", Asignado: false}))
	ids, _ = planteles.PlantelesDeAdmin("a1")
	assert.Empty(t, ids)
}
