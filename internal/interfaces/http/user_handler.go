package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
)

// UserHandler maneja las operaciones administrativas sobre usuarios.
type UserHandler struct {
	uc    *usecase.UserAdminUseCase
	docs  *usecase.DocumentoUseCase
	pdfUC *usecase.ExpedientePDFUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserAdminUseCase, docs *usecase.DocumentoUseCase, pdfUC *usecase.ExpedientePDFUseCase) *UserHandler {
	return &UserHandler{uc: uc, docs: docs, pdfUC: pdfUC}
}

// List godoc
// @Summary      Listar usuarios visibles para el solicitante
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (máx 100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	out, err := h.uc.List(GetIdentity(c), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListAdmins godoc
// @Summary      Listar cuentas con rol admin
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admins [get]
func (h *UserHandler) ListAdmins(c *fiber.Ctx) error {
	out, err := h.uc.ListAdmins()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Expediente godoc
// @Summary      Estado del expediente de un usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.EstadoDocumentosResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/expediente [get]
func (h *UserHandler) Expediente(c *fiber.Ctx) error {
	out, err := h.docs.Estado(GetIdentity(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ExpedientePDF godoc
// @Summary      Resumen del expediente en PDF
// @Tags         users
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del usuario"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/expediente/pdf [get]
func (h *UserHandler) ExpedientePDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfUC.Resumen(GetIdentity(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(data)
}

// UpdateFicha godoc
// @Summary      Actualizar la ficha técnica de un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del usuario"
// @Param        body  body  dto.FichaRequest  true  "campos de la ficha"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/ficha [patch]
func (h *UserHandler) UpdateFicha(c *fiber.Ctx) error {
	var in dto.FichaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateFicha(GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// SetEstatus godoc
// @Summary      Activar o desactivar una cuenta
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del usuario"
// @Param        body  body  dto.EstatusRequest  true  "active"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/estatus [patch]
func (h *UserHandler) SetEstatus(c *fiber.Ctx) error {
	var in dto.EstatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Active == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "active es requerido"})
	}
	out, err := h.uc.SetEstatus(GetIdentity(c), c.Params("id"), *in.Active)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// SetPlantel godoc
// @Summary      Asignar o quitar el plantel de un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del usuario"
// @Param        body  body  dto.AsignarPlantelRequest  true  "plantel_id (null desasigna)"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/plantel [patch]
func (h *UserHandler) SetPlantel(c *fiber.Ctx) error {
	var in dto.AsignarPlantelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetPlantel(GetIdentity(c), c.Params("id"), in.PlantelID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar un usuario y todos sus dependientes
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.OKResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetIdentity(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true, Message: "usuario eliminado"})
}

// Aprobar godoc
// @Summary      Aprobar un candidato (requiere contrato firmado)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/aprobar [post]
func (h *UserHandler) Aprobar(c *fiber.Ctx) error {
	out, err := h.uc.Aprobar(GetIdentity(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AprobarExpediente godoc
// @Summary      Aprobar un candidato (requiere proyectivos aceptados)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/aprobar-expediente [post]
func (h *UserHandler) AprobarExpediente(c *fiber.Ctx) error {
	out, err := h.uc.AprobarExpediente(GetIdentity(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AprobarBulk godoc
// @Summary      Aprobar varios candidatos en lote
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkApproveRequest  true  "user_ids"
// @Success      200   {object}  dto.BulkApproveResponse
// @Router       /api/users/aprobar-bulk [post]
func (h *UserHandler) AprobarBulk(c *fiber.Ctx) error {
	var in dto.BulkApproveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.UserIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_ids es requerido"})
	}
	out, err := h.uc.AprobarBulk(GetIdentity(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Psicometricos godoc
// @Summary      Resultados psicométricos del usuario en los sistemas heredados
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {array}   dto.ResultadoPsicometrico
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/psicometricos [get]
func (h *UserHandler) Psicometricos(c *fiber.Ctx) error {
	out, err := h.uc.Psicometricos(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
