package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
)

// PuestoHandler maneja el catálogo de puestos.
type PuestoHandler struct {
	uc *usecase.PuestoUseCase
}

// NewPuestoHandler construye el handler.
func NewPuestoHandler(uc *usecase.PuestoUseCase) *PuestoHandler {
	return &PuestoHandler{uc: uc}
}

// List godoc
// @Summary      Listar el catálogo de puestos
// @Tags         puestos
// @Security     Bearer
// @Produce      json
// @Param        solo_activos  query  bool  false  "excluir puestos desactivados"
// @Success      200  {object}  dto.PuestoListResponse
// @Router       /api/puestos [get]
func (h *PuestoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("solo_activos"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear un puesto
// @Tags         puestos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePuestoRequest  true  "name"
// @Success      201   {object}  dto.PuestoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/puestos [post]
func (h *PuestoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePuestoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar o activar/desactivar un puesto
// @Tags         puestos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del puesto"
// @Param        body  body  dto.UpdatePuestoRequest  true  "name, active"
// @Success      200   {object}  dto.PuestoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/puestos/{id} [patch]
func (h *PuestoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePuestoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un puesto; si está en uso solo se desactiva
// @Tags         puestos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del puesto"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/puestos/{id} [delete]
func (h *PuestoHandler) Delete(c *fiber.Ctx) error {
	desactivado, err := h.uc.Delete(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	msg := "puesto eliminado"
	if desactivado {
		msg = "puesto en uso, se desactivó en lugar de eliminarse"
	}
	return c.JSON(dto.OKResponse{OK: true, Message: msg})
}

// Importar godoc
// @Summary      Importar el catálogo desde una lista de nombres
// @Tags         puestos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportPuestosRequest  true  "nombres, modo (merge | replace)"
// @Success      200   {object}  dto.ImportPuestosResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/puestos/importar [post]
func (h *PuestoHandler) Importar(c *fiber.Ctx) error {
	var in dto.ImportPuestosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Modo == "" {
		in.Modo = dto.ImportModoMerge
	}
	out, err := h.uc.Import(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
