package dto

import "time"

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	Active     bool       `json:"active"`
	IsApproved bool       `json:"is_approved"`
	PlantelID  *string    `json:"plantel_id,omitempty"`
	CURP       string     `json:"curp,omitempty"`
	RFC        string     `json:"rfc,omitempty"`
	Address    string     `json:"address,omitempty"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
	Puesto     string     `json:"puesto,omitempty"`
	Horario    string     `json:"horario,omitempty"`
	Sueldo     string     `json:"sueldo,omitempty"`
	PhotoURL   string     `json:"photo_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// FichaRequest actualización parcial de la ficha técnica (campos nil no cambian).
type FichaRequest struct {
	CURP     *string `json:"curp"`
	RFC      *string `json:"rfc"`
	Address  *string `json:"address"`
	HireDate *string `json:"hire_date"` // YYYY-MM-DD
	Puesto   *string `json:"puesto"`
	Horario  *string `json:"horario"`
	Sueldo   *string `json:"sueldo"` // decimal, p. ej. "12500.50"
}

// EstatusRequest activa o desactiva una cuenta.
type EstatusRequest struct {
	Active *bool `json:"active"`
}

// AsignarPlantelRequest cambia el plantel de un usuario; null lo desasigna.
type AsignarPlantelRequest struct {
	PlantelID *string `json:"plantel_id"`
}

// UpdateEmailRequest cambio de email del propio usuario.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// IdentificadoresRequest cambio de CURP/RFC del propio usuario.
type IdentificadoresRequest struct {
	CURP string `json:"curp"`
	RFC  string `json:"rfc"`
}

// BulkApproveRequest aprobación masiva de candidatos.
type BulkApproveRequest struct {
	UserIDs []string `json:"user_ids"`
}

// BulkApproveResult resultado por usuario de la aprobación masiva.
type BulkApproveResult struct {
	UserID   string `json:"user_id"`
	Aprobado bool   `json:"aprobado"`
	Error    string `json:"error,omitempty"`
}

// BulkApproveResponse salida de la aprobación masiva.
type BulkApproveResponse struct {
	Resultados []BulkApproveResult `json:"resultados"`
	Aprobados  int                 `json:"aprobados"`
}
