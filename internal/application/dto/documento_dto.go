package dto

import "time"

// DocumentoResponse salida de un documento subido.
type DocumentoResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	FileURL       string    `json:"file_url"`
	Version       int       `json:"version"`
	ReviewComment string    `json:"review_comment,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// ChecklistItemResponse salida de un paso del checklist.
type ChecklistItemResponse struct {
	Type       string  `json:"type"`
	Required   bool    `json:"required"`
	AdminOnly  bool    `json:"admin_only"`
	Fulfilled  bool    `json:"fulfilled"`
	DocumentID *string `json:"document_id,omitempty"`
}

// FirmaResponse salida de una transacción de firma electrónica.
type FirmaResponse struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	Provider   string     `json:"provider"`
	ExternalID string     `json:"external_id,omitempty"`
	SignedAt   *time.Time `json:"signed_at,omitempty"`
}

// ProgresoResponse avance del checklist de un usuario.
type ProgresoResponse struct {
	Done     int  `json:"done"`
	Total    int  `json:"total"`
	Percent  int  `json:"percent"`
	Completo bool `json:"completo"`
}

// EstadoDocumentosResponse estado completo del expediente de un usuario.
type EstadoDocumentosResponse struct {
	User                UserResponse            `json:"user"`
	Checklist           []ChecklistItemResponse `json:"checklist"`
	Documentos          []DocumentoResponse     `json:"documentos"`
	Firmas              []FirmaResponse         `json:"firmas"`
	Progreso            ProgresoResponse        `json:"progreso"`
	ProyectivosAceptado bool                    `json:"proyectivos_aceptado"`
	ExpedienteCompleto  bool                    `json:"expediente_completo"`
}

// WebhookFirmaRequest callback de estado del proveedor de firma.
type WebhookFirmaRequest struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// ResultadoPsicometrico resultado de prueba leído de los sistemas heredados.
type ResultadoPsicometrico struct {
	Fuente   string    `json:"fuente"` // psicometricos | evaluaciones
	Prueba   string    `json:"prueba"`
	URL      string    `json:"url"`
	Aplicada time.Time `json:"aplicada"`
}
