package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentohumano/expediente-api/internal/domain/entity"
)

func item(tipo string, required, adminOnly, fulfilled bool) entity.ChecklistItem {
	return entity.ChecklistItem{Type: tipo, Required: required, AdminOnly: adminOnly, Fulfilled: fulfilled}
}

func TestUserProgress_SinItems_CeroPorCiento(t *testing.T) {
	p := UserProgress(nil)
	assert.Equal(t, 0, p.Percent, "sin items el porcentaje debe ser 0, no NaN")
	assert.False(t, p.Complete, "sin items nunca está completo")
	assert.Equal(t, 0, p.Total)
}

func TestUserProgress_SoloItemsAdminOnly_CeroPorCiento(t *testing.T) {
	items := []entity.ChecklistItem{
		item(entity.DocProyectivos, true, true, true),
	}
	p := UserProgress(items)
	assert.Equal(t, 0, p.Total, "los pasos admin-only no cuentan en el avance del usuario")
	assert.Equal(t, 0, p.Percent)
	assert.False(t, p.Complete)
}

func TestUserProgress_Parcial(t *testing.T) {
	items := []entity.ChecklistItem{
		item(entity.DocActaNacimiento, true, false, true),
		item(entity.DocCURP, true, false, true),
		item(entity.DocINE, true, false, false),
	}
	p := UserProgress(items)
	assert.Equal(t, 2, p.Done)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 67, p.Percent, "round(100*2/3) = 67")
	assert.False(t, p.Complete)
}

func TestUserProgress_Completo(t *testing.T) {
	items := []entity.ChecklistItem{
		item(entity.DocActaNacimiento, true, false, true),
		item(entity.DocCURP, true, false, true),
		item(entity.DocProyectivos, true, true, false), // no bloquea el avance del usuario
		item(entity.DocFoto, false, false, false),      // no requerido, no cuenta
	}
	p := UserProgress(items)
	assert.Equal(t, 100, p.Percent)
	assert.True(t, p.Complete)
	assert.LessOrEqual(t, p.Done, p.Total)
}

func TestDocumentoAceptado(t *testing.T) {
	docs := []entity.Document{
		{Type: entity.DocProyectivos, Status: entity.DocPendiente},
		{Type: entity.DocCURP, Status: entity.DocAceptado},
	}
	assert.False(t, DocumentoAceptado(docs, entity.DocProyectivos), "pendiente no cuenta como aceptado")

	docs[0].Status = entity.DocAceptado
	assert.True(t, DocumentoAceptado(docs, entity.DocProyectivos))
}

func TestFirmaCompletada(t *testing.T) {
	sigs := []entity.Signature{
		{Type: entity.DocContrato, Status: entity.FirmaPendiente},
		{Type: entity.DocReglamento, Status: entity.FirmaCompletado},
	}
	assert.False(t, FirmaCompletada(sigs, entity.DocContrato))
	assert.True(t, FirmaCompletada(sigs, entity.DocReglamento))

	sigs[0].Status = entity.FirmaFirmado
	assert.True(t, FirmaCompletada(sigs, entity.DocContrato), "firmado también es estado terminal exitoso")
}

func completeFixture(n int) ([]entity.ChecklistItem, []entity.Document, []entity.Signature) {
	items := make([]entity.ChecklistItem, 0, n)
	tipos := []string{
		entity.DocActaNacimiento, entity.DocCURP, entity.DocConstanciaFiscal, entity.DocINE,
		entity.DocComprobanteDomicilio, entity.DocComprobanteEstudios, entity.DocCartaRecomendacion,
		entity.DocSolicitudEmpleo, entity.DocNSS, entity.DocCartaNoAntecedentes,
	}
	for i := 0; i < n; i++ {
		items = append(items, item(tipos[i%len(tipos)], true, false, true))
	}
	docs := []entity.Document{{Type: entity.DocProyectivos, Status: entity.DocAceptado}}
	sigs := []entity.Signature{
		{Type: entity.DocContrato, Status: entity.FirmaCompletado},
		{Type: entity.DocReglamento, Status: entity.FirmaFirmado},
	}
	return items, docs, sigs
}

func TestExpedienteCompleto(t *testing.T) {
	items, docs, sigs := completeFixture(10)
	assert.True(t, ExpedienteCompleto(items, docs, sigs, 10))
}

func TestExpedienteCompleto_MenosDelMinimoDeItems(t *testing.T) {
	items, docs, sigs := completeFixture(4)
	assert.False(t, ExpedienteCompleto(items, docs, sigs, 10),
		"un checklist con menos pasos que el mínimo nunca cuenta como completo aunque todo esté cumplido")
	assert.True(t, ExpedienteCompleto(items, docs, sigs, 4),
		"el mínimo es configurable")
}

func TestExpedienteCompleto_SinProyectivos(t *testing.T) {
	items, _, sigs := completeFixture(10)
	assert.False(t, ExpedienteCompleto(items, nil, sigs, 10))
}

func TestExpedienteCompleto_SinFirmaDeContrato(t *testing.T) {
	items, docs, _ := completeFixture(10)
	sigs := []entity.Signature{{Type: entity.DocReglamento, Status: entity.FirmaCompletado}}
	assert.False(t, ExpedienteCompleto(items, docs, sigs, 10))
}

func TestExpedienteCompleto_ChecklistIncompleto(t *testing.T) {
	items, docs, sigs := completeFixture(10)
	items[3].Fulfilled = false
	assert.False(t, ExpedienteCompleto(items, docs, sigs, 10))
}
