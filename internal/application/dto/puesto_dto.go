package dto

import "time"

// CreatePuestoRequest entrada para crear un puesto.
type CreatePuestoRequest struct {
	Name string `json:"name"`
}

// UpdatePuestoRequest renombra o activa/desactiva un puesto.
type UpdatePuestoRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

// PuestoResponse salida de un puesto.
type PuestoResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PuestoListResponse listado del catálogo.
type PuestoListResponse struct {
	Items []PuestoResponse `json:"items"`
}

// Modos de importación del catálogo.
const (
	ImportModoMerge   = "merge"
	ImportModoReplace = "replace"
)

// ImportPuestosRequest importación masiva de puestos.
type ImportPuestosRequest struct {
	Nombres []string `json:"nombres"`
	Modo    string   `json:"modo"` // merge | replace
}

// ImportPuestosResponse conteos de la importación (idempotente en merge).
type ImportPuestosResponse struct {
	Creados      int `json:"creados"`
	Reactivados  int `json:"reactivados"`
	SinCambio    int `json:"sin_cambio"`
	Desactivados int `json:"desactivados,omitempty"` // solo en modo replace
}
