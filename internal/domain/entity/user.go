package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role es el rol cerrado de un usuario. Se usa el tipo en todo el código en
// lugar de comparar strings sueltos, para que el conjunto de roles permitidos
// por operación sea verificable.
type Role string

const (
	RoleCandidato  Role = "candidato"
	RoleEmpleado   Role = "empleado"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ParseRole convierte un string a Role; ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCandidato, RoleEmpleado, RoleAdmin, RoleSuperadmin:
		return Role(s), true
	}
	return "", false
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// EsStaff indica si el rol tiene facultades administrativas.
func (r Role) EsStaff() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// EsPersonal indica si el rol corresponde a personal en proceso o contratado
// (los roles que cuentan en el progreso de planteles).
func (r Role) EsPersonal() bool {
	return r == RoleCandidato || r == RoleEmpleado
}

// User representa a un candidato, empleado o administrador del sistema.
// PlantelID es nulo mientras el usuario no esté asignado a un plantel.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt; vacío para cuentas que solo entran con Google
	Name         string
	Role         Role
	Active       bool
	IsApproved   bool
	PlantelID    *string

	// Ficha técnica
	CURP      string
	RFC       string
	Address   string
	HireDate  *time.Time
	Puesto    string
	Horario   string
	Sueldo    decimal.Decimal
	PhotoPath string

	CreatedAt time.Time
	UpdatedAt time.Time
}
