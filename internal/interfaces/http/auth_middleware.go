package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/pkg/jwt"
)

// LocalIdentity es la key de Locals con la identidad de la petición.
const LocalIdentity = "identity"

// AuthMiddleware valida el token de sesión (cookie HTTP-only o Bearer) y deja
// la Identity decodificada en c.Locals. La cookie es el camino normal del
// frontend; el Bearer sirve para clientes de API.
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(cookieName)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		role, ok := entity.ParseRole(claims.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "rol desconocido en el token"})
		}
		ident := auth.Identity{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      role,
			Planteles: claims.Planteles,
		}
		if claims.ImpersonadorID != "" {
			ident.Impersonador = &auth.Impersonador{
				UserID: claims.ImpersonadorID,
				Email:  claims.ImpersonadorEmail,
			}
		}
		c.Locals(LocalIdentity, ident)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) auth.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return auth.Identity{}
	}
	ident, _ := v.(auth.Identity)
	return ident
}
