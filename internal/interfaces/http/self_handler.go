package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
)

// SelfHandler maneja las operaciones del propio usuario sobre su cuenta.
type SelfHandler struct {
	uc *usecase.SelfUseCase
}

// NewSelfHandler construye el handler.
func NewSelfHandler(uc *usecase.SelfUseCase) *SelfHandler {
	return &SelfHandler{uc: uc}
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/me [get]
func (h *SelfHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateEmail godoc
// @Summary      Cambiar el email propio
// @Tags         me
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateEmailRequest  true  "email"
// @Success      200   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/me/email [patch]
func (h *SelfHandler) UpdateEmail(c *fiber.Ctx) error {
	var in dto.UpdateEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateEmail(GetIdentity(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateIdentificadores godoc
// @Summary      Cambiar CURP y RFC propios
// @Tags         me
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IdentificadoresRequest  true  "curp, rfc"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/me/identificadores [patch]
func (h *SelfHandler) UpdateIdentificadores(c *fiber.Ctx) error {
	var in dto.IdentificadoresRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateIdentificadores(GetIdentity(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdatePlantel godoc
// @Summary      Cambiar el plantel propio
// @Tags         me
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AsignarPlantelRequest  true  "plantel_id (null desasigna)"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/me/plantel [patch]
func (h *SelfHandler) UpdatePlantel(c *fiber.Ctx) error {
	var in dto.AsignarPlantelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdatePlantel(GetIdentity(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
