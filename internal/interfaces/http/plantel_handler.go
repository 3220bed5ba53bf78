package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
)

// PlantelHandler maneja el CRUD de planteles, la matriz de asignaciones y las
// vistas de progreso.
type PlantelHandler struct {
	uc       *usecase.PlantelUseCase
	progreso *usecase.ProgresoUseCase
}

// NewPlantelHandler construye el handler.
func NewPlantelHandler(uc *usecase.PlantelUseCase, progreso *usecase.ProgresoUseCase) *PlantelHandler {
	return &PlantelHandler{uc: uc, progreso: progreso}
}

// List godoc
// @Summary      Listar planteles
// @Tags         planteles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PlantelListResponse
// @Router       /api/planteles [get]
func (h *PlantelHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear un plantel
// @Tags         planteles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlantelRequest  true  "name, label, description"
// @Success      201   {object}  dto.PlantelResponse
// @Router       /api/planteles [post]
func (h *PlantelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlantelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar un plantel
// @Tags         planteles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del plantel"
// @Param        body  body  dto.UpdatePlantelRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.PlantelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/planteles/{id} [patch]
func (h *PlantelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePlantelRequest
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
// @Summary      Eliminar un plantel sin usuarios ni admins asignados
// @Tags         planteles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del plantel"
// @Success      200  {object}  dto.OKResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/planteles/{id} [delete]
func (h *PlantelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true, Message: "plantel eliminado"})
}

// AssignAdmin godoc
// @Summary      Asignar un admin a un plantel
// @Tags         planteles
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del plantel"
// @Param        userID  path  string  true  "ID del admin"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/planteles/{id}/admins/{userID} [post]
func (h *PlantelHandler) AssignAdmin(c *fiber.Ctx) error {
	if err := h.uc.AssignAdmin(c.Params("id"), c.Params("userID")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// UnassignAdmin godoc
// @Summary      Quitar un admin de un plantel
// @Tags         planteles
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del plantel"
// @Param        userID  path  string  true  "ID del admin"
// @Success      200  {object}  dto.OKResponse
// @Router       /api/planteles/{id}/admins/{userID} [delete]
func (h *PlantelHandler) UnassignAdmin(c *fiber.Ctx) error {
	if err := h.uc.UnassignAdmin(c.Params("id"), c.Params("userID")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Matrix godoc
// @Summary      Matriz planteles × admins con sus asignaciones
// @Tags         planteles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MatrixResponse
// @Router       /api/planteles/admins/matrix [get]
func (h *PlantelHandler) Matrix(c *fiber.Ctx) error {
	out, err := h.uc.Matrix()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ToggleMatrix godoc
// @Summary      Asignar o desasignar desde la matriz
// @Tags         planteles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MatrixToggleRequest  true  "plantel_id, admin_id, asignado"
// @Success      200   {object}  dto.OKResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/planteles/admins/matrix [put]
func (h *PlantelHandler) ToggleMatrix(c *fiber.Ctx) error {
	var in dto.MatrixToggleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PlantelID == "" || in.AdminID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "plantel_id y admin_id son requeridos"})
	}
	if err := h.uc.ToggleMatrix(in); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// ProgresoGlobal godoc
// @Summary      Avance de expedientes de todos los planteles visibles
// @Tags         planteles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProgresoGlobalResponse
// @Router       /api/planteles/progreso [get]
func (h *PlantelHandler) ProgresoGlobal(c *fiber.Ctx) error {
	out, err := h.progreso.Global(GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ProgresoPlantel godoc
// @Summary      Avance detallado de un plantel
// @Tags         planteles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del plantel"
// @Success      200  {object}  dto.ProgresoPlantelResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/planteles/{id}/progreso [get]
func (h *PlantelHandler) ProgresoPlantel(c *fiber.Ctx) error {
	out, err := h.progreso.PorPlantel(GetIdentity(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
