package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentohumano/expediente-api/pkg/normalize"
)

func TestKey_IgualaAcentosEspaciosYMayusculas(t *testing.T) {
	casos := []struct {
		a, b string
	}{
		{"Médico General", "medico general"},
		{"  Médico   General ", "MEDICO GENERAL"},
		{"Enfermería", "enfermeria"},
		{"Auxiliar de Cómputo", "auxiliar de computo"},
		{"ÑOÑO", "ñoño"},
	}
	for _, c := range casos {
		assert.Equal(t, normalize.Key(c.a), normalize.Key(c.b), "%q vs %q", c.a, c.b)
	}
}

func TestKey_DistingueNombresRealmenteDistintos(t *testing.T) {
	assert.NotEqual(t, normalize.Key("Docente"), normalize.Key("Docente Titular"))
}

func TestClean_ConservaPresentacion(t *testing.T) {
	assert.Equal(t, "Médico General", normalize.Clean("  Médico   General "))
	assert.Equal(t, "", normalize.Clean("   "))
}
