package auth

import "github.com/talentohumano/expediente-api/internal/domain/entity"

// Impersonador es la identidad original cuando la sesión actual es una
// suplantación. La pila tiene exactamente un nivel: un superadmin suplantando
// a un admin no puede volver a suplantar.
type Impersonador struct {
	UserID string
	Email  string
}

// Identity es la identidad inmutable de la petición, decodificada del token
// de sesión por el middleware y pasada a todos los handlers.
type Identity struct {
	UserID       string
	Email        string
	Role         entity.Role
	Planteles    []string // planteles asignados cuando Role es admin
	Impersonador *Impersonador
}

// AdministraPlantel indica si la identidad puede operar sobre el plantel dado.
// Superadmin administra todo; admin solo sus planteles asignados.
func (id Identity) AdministraPlantel(plantelID string) bool {
	if id.Role == entity.RoleSuperadmin {
		return true
	}
	if id.Role != entity.RoleAdmin {
		return false
	}
	for _, p := range id.Planteles {
		if p == plantelID {
			return true
		}
	}
	return false
}

// PuedeGestionarUsuario decide si la identidad puede leer o mutar el usuario
// objetivo: superadmin siempre; admin solo dentro de sus planteles (un usuario
// sin plantel también es visible para cualquier admin, para poder asignarlo).
func (id Identity) PuedeGestionarUsuario(u *entity.User) bool {
	switch id.Role {
	case entity.RoleSuperadmin:
		return true
	case entity.RoleAdmin:
		if u.PlantelID == nil {
			return true
		}
		return id.AdministraPlantel(*u.PlantelID)
	default:
		return id.UserID == u.ID
	}
}

// EsSuplantacion indica si la sesión actual proviene de una suplantación.
func (id Identity) EsSuplantacion() bool {
	return id.Impersonador != nil
}
