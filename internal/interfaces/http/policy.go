package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
)

// Operation es el nombre de una operación protegida de la API. La tabla de
// política mapea cada operación a sus roles permitidos; los handlers nunca
// comparan roles a mano.
type Operation string

const (
	OpVerUsuarios        Operation = "usuarios.ver"
	OpGestionarUsuarios  Operation = "usuarios.gestionar"
	OpAprobarCandidatos  Operation = "usuarios.aprobar"
	OpBorrarUsuarios     Operation = "usuarios.borrar"
	OpVerPsicometricos   Operation = "usuarios.psicometricos"
	OpGestionarPlanteles Operation = "planteles.gestionar"
	OpVerProgreso        Operation = "planteles.progreso"
	OpGestionarAdmins    Operation = "admins.gestionar"
	OpGestionarPuestos   Operation = "puestos.gestionar"
	OpVerPuestos         Operation = "puestos.ver"
	OpRevisarDocumentos  Operation = "documentos.revisar"
	OpSubirTestigo       Operation = "documentos.testigo"
	OpSuplantar          Operation = "auth.suplantar"
)

// policy es la tabla declarativa de autorización por operación.
var policy = map[Operation][]entity.Role{
	OpVerUsuarios:        {entity.RoleAdmin, entity.RoleSuperadmin},
	OpGestionarUsuarios:  {entity.RoleAdmin, entity.RoleSuperadmin},
	OpAprobarCandidatos:  {entity.RoleAdmin, entity.RoleSuperadmin},
	OpBorrarUsuarios:     {entity.RoleAdmin, entity.RoleSuperadmin},
	OpVerPsicometricos:   {entity.RoleAdmin, entity.RoleSuperadmin},
	OpGestionarPlanteles: {entity.RoleSuperadmin},
	OpVerProgreso:        {entity.RoleAdmin, entity.RoleSuperadmin},
	OpGestionarAdmins:    {entity.RoleSuperadmin},
	OpGestionarPuestos:   {entity.RoleSuperadmin},
	OpVerPuestos:         {entity.RoleCandidato, entity.RoleEmpleado, entity.RoleAdmin, entity.RoleSuperadmin},
	OpRevisarDocumentos:  {entity.RoleAdmin, entity.RoleSuperadmin},
	OpSubirTestigo:       {entity.RoleAdmin, entity.RoleSuperadmin},
	OpSuplantar:          {entity.RoleSuperadmin},
}

// Permitido consulta la tabla de política.
func Permitido(role entity.Role, op Operation) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// RequireRole devuelve un middleware que rechaza con 403 los roles no
// permitidos para la operación. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := GetIdentity(c)
		if ident.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		if !Permitido(ident.Role, op) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permiso para esta operación"})
		}
		return c.Next()
	}
}
