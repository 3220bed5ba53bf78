package entity

import "time"

// Tipos de paso del checklist de onboarding. Son los mismos tipos que usan
// ChecklistItem, Document y Signature.
const (
	DocActaNacimiento       = "acta_nacimiento"
	DocCURP                 = "curp"
	DocConstanciaFiscal     = "constancia_fiscal"
	DocINE                  = "ine"
	DocComprobanteDomicilio = "comprobante_domicilio"
	DocComprobanteEstudios  = "comprobante_estudios"
	DocCartaRecomendacion   = "carta_recomendacion"
	DocSolicitudEmpleo      = "solicitud_empleo"
	DocNSS                  = "nss"
	DocCartaNoAntecedentes  = "carta_no_antecedentes"
	DocContrato             = "contrato"
	DocReglamento           = "reglamento"
	DocProyectivos          = "proyectivos" // solo lo sube un admin
	DocFoto                 = "foto"
)

// Estados de revisión de un documento.
const (
	DocPendiente = "pendiente"
	DocAceptado  = "aceptado"
	DocRechazado = "rechazado"
)

// TiposSubida son los pasos que el propio usuario puede subir como PDF.
var TiposSubida = map[string]bool{
	DocActaNacimiento:       true,
	DocCURP:                 true,
	DocConstanciaFiscal:     true,
	DocINE:                  true,
	DocComprobanteDomicilio: true,
	DocComprobanteEstudios:  true,
	DocCartaRecomendacion:   true,
	DocSolicitudEmpleo:      true,
	DocNSS:                  true,
	DocCartaNoAntecedentes:  true,
}

// TiposTestigo son los pasos que un admin puede subir como testigo de una
// firma presencial; quedan aceptados de inmediato.
var TiposTestigo = map[string]bool{
	DocContrato:   true,
	DocReglamento: true,
}

// Document es un archivo subido para un paso del checklist. Una nueva subida
// para el mismo (usuario, tipo) reemplaza el registro anterior y su archivo.
type Document struct {
	ID            string
	UserID        string
	Type          string
	Status        string // pendiente | aceptado | rechazado
	FilePath      string
	Version       int
	ReviewComment string
	UploadedAt    time.Time
}

// ChecklistItem es un paso requerido del onboarding de un usuario y su estado
// de cumplimiento. A lo más un registro vivo por (usuario, tipo).
type ChecklistItem struct {
	ID         string
	UserID     string
	Type       string
	Required   bool
	AdminOnly  bool
	Fulfilled  bool
	DocumentID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
