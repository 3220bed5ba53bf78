package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPlantelEnUso       = errors.New("el plantel tiene usuarios o administradores asignados")
	ErrYaAprobado         = errors.New("el candidato ya fue aprobado")
	ErrRequisitoFaltante  = errors.New("falta un requisito para aprobar al candidato")
	ErrTokenInvalido      = errors.New("token inválido o vencido")
	ErrAutoAccion         = errors.New("no puedes realizar esta acción sobre tu propia cuenta")
)
