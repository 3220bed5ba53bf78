package checklist

import (
	"math"

	"github.com/talentohumano/expediente-api/internal/domain/entity"
)

// Progress es el avance del checklist de un usuario sobre los pasos que él
// mismo debe cumplir (requeridos y no exclusivos de admin).
type Progress struct {
	Done     int
	Total    int
	Percent  int // redondeado; 0 cuando Total es 0, nunca NaN
	Complete bool
}

// UserProgress calcula el avance visible para el usuario: pasos requeridos no
// admin-only cumplidos entre el total de esos pasos.
func UserProgress(items []entity.ChecklistItem) Progress {
	var p Progress
	for _, it := range items {
		if !it.Required || it.AdminOnly {
			continue
		}
		p.Total++
		if it.Fulfilled {
			p.Done++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(100 * float64(p.Done) / float64(p.Total)))
		p.Complete = p.Done == p.Total
	}
	return p
}

// DocumentoAceptado indica si existe un documento aceptado del tipo dado.
// Se usa para la parte admin-only del expediente (proyectivos).
func DocumentoAceptado(docs []entity.Document, docType string) bool {
	for _, d := range docs {
		if d.Type == docType && d.Status == entity.DocAceptado {
			return true
		}
	}
	return false
}

// FirmaCompletada indica si existe una firma en estado terminal exitoso del tipo dado.
func FirmaCompletada(sigs []entity.Signature, sigType string) bool {
	for _, s := range sigs {
		if s.Type == sigType && s.Firmada() {
			return true
		}
	}
	return false
}

// ExpedienteCompleto decide si el expediente completo de un usuario está
// cerrado: checklist del usuario completo, proyectivos aceptado, contrato y
// reglamento firmados, y al menos minItems pasos registrados. El mínimo evita
// que un usuario con un checklist recortado (p. ej. cero pasos requeridos)
// cuente como completo solo por cocientes.
func ExpedienteCompleto(items []entity.ChecklistItem, docs []entity.Document, sigs []entity.Signature, minItems int) bool {
	if len(items) < minItems {
		return false
	}
	if !UserProgress(items).Complete {
		return false
	}
	if !DocumentoAceptado(docs, entity.DocProyectivos) {
		return false
	}
	return FirmaCompletada(sigs, entity.DocContrato) && FirmaCompletada(sigs, entity.DocReglamento)
}
