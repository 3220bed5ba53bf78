package entity

import "time"

// Estados de una transacción de firma electrónica.
const (
	FirmaPendiente  = "pendiente"
	FirmaFirmado    = "firmado"
	FirmaCompletado = "completado"
	FirmaError      = "error"
)

// Signature registra una transacción de firma electrónica (widget MiFiel)
// para los pasos firmables: contrato y reglamento interno.
type Signature struct {
	ID         string
	UserID     string
	Type       string // contrato | reglamento
	Status     string
	Provider   string // "mifiel"
	ExternalID string // id de la sesión del widget en el proveedor
	SignedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Firmada indica si la transacción llegó a un estado terminal exitoso.
func (s Signature) Firmada() bool {
	return s.Status == FirmaFirmado || s.Status == FirmaCompletado
}
