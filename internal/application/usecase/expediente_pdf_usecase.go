package usecase

import (
	"fmt"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/ports"
)

// ExpedientePDFUseCase genera el PDF resumen del expediente de un usuario a
// partir de su estado consolidado.
type ExpedientePDFUseCase struct {
	docs *DocumentoUseCase
	gen  ports.ExpedientePDFGenerator
}

// NewExpedientePDFUseCase construye el caso de uso.
func NewExpedientePDFUseCase(docs *DocumentoUseCase, gen ports.ExpedientePDFGenerator) *ExpedientePDFUseCase {
	return &ExpedientePDFUseCase{docs: docs, gen: gen}
}

// Resumen devuelve el PDF resumen y el nombre de archivo sugerido.
func (uc *ExpedientePDFUseCase) Resumen(ident auth.Identity, userID string) ([]byte, string, error) {
	estado, err := uc.docs.Estado(ident, userID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.gen.Generate(*estado)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF del expediente: %w", err)
	}
	return pdf, fmt.Sprintf("expediente_%s.pdf", userID), nil
}
