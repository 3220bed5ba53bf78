package dto

import "time"

// CreatePlantelRequest entrada para crear un plantel.
type CreatePlantelRequest struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// UpdatePlantelRequest actualización parcial de un plantel.
type UpdatePlantelRequest struct {
	Name        *string `json:"name"`
	Label       *string `json:"label"`
	Description *string `json:"description"`
}

// PlantelResponse salida de un plantel.
type PlantelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlantelListResponse listado de planteles.
type PlantelListResponse struct {
	Items []PlantelResponse `json:"items"`
}

// MatrixToggleRequest alterna una asignación admin↔plantel desde la matriz.
type MatrixToggleRequest struct {
	PlantelID string `json:"plantel_id"`
	AdminID   string `json:"admin_id"`
	Asignado  bool   `json:"asignado"`
}

// MatrixResponse matriz planteles × admins con el bitmap de asignaciones.
type MatrixResponse struct {
	Planteles    []PlantelResponse `json:"planteles"`
	Admins       []UserResponse    `json:"admins"`
	// Asignaciones mapea plantel_id -> lista de admin ids asignados.
	Asignaciones map[string][]string `json:"asignaciones"`
}

// UsuarioProgreso avance de un usuario dentro del rollup por plantel.
type UsuarioProgreso struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Percent  int    `json:"percent"`
	Completo bool   `json:"completo"`
}

// ProgresoPlantelResponse agregado de avance de un plantel.
type ProgresoPlantelResponse struct {
	PlantelID string            `json:"plantel_id"`
	Name      string            `json:"name"`
	Total     int               `json:"total"`
	Completos int               `json:"completos"`
	Percent   int               `json:"percent"`
	Usuarios  []UsuarioProgreso `json:"usuarios,omitempty"`
}

// ProgresoGlobalResponse rollup de todos los planteles más los usuarios sin asignar.
type ProgresoGlobalResponse struct {
	Planteles  []ProgresoPlantelResponse `json:"planteles"`
	SinPlantel []UserResponse            `json:"sin_plantel"`
}
