package http

import (
	"crypto/subtle"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
)

// DocumentoHandler maneja subidas, revisión, firmas y descarga de archivos.
type DocumentoHandler struct {
	uc            *usecase.DocumentoUseCase
	pdfUC         *usecase.ExpedientePDFUseCase
	webhookSecret string
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(uc *usecase.DocumentoUseCase, pdfUC *usecase.ExpedientePDFUseCase, webhookSecret string) *DocumentoHandler {
	return &DocumentoHandler{uc: uc, pdfUC: pdfUC, webhookSecret: webhookSecret}
}

// subidaDesdeForm abre el archivo del form multipart como entrada del caso de uso.
func subidaDesdeForm(fh *multipart.FileHeader) (usecase.Subida, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.Subida{}, nil, err
	}
	return usecase.Subida{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, func() { f.Close() }, nil
}

// Estado godoc
// @Summary      Estado del expediente (propio, u otro usuario para staff)
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "usuario a consultar; por omisión el propio"
// @Success      200  {object}  dto.EstadoDocumentosResponse
// @Router       /api/documentos/estado [get]
func (h *DocumentoHandler) Estado(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	userID := c.Query("user_id")
	if userID == "" {
		userID = ident.UserID
	}
	out, err := h.uc.Estado(ident, userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Subir godoc
// @Summary      Subir un documento propio (PDF, queda pendiente de revisión)
// @Tags         documentos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        tipo     formData  string  true  "tipo de paso (acta_nacimiento, curp, ...)"
// @Param        archivo  formData  file    true  "archivo PDF"
// @Success      201      {object}  dto.DocumentoResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/documentos/subir [post]
func (h *DocumentoHandler) Subir(c *fiber.Ctx) error {
	tipo := c.FormValue("tipo")
	if tipo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo es requerido"})
	}
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo es requerido"})
	}
	in, cerrar, err := subidaDesdeForm(fh)
	if err != nil {
		return handleError(c, err)
	}
	defer cerrar()
	out, err := h.uc.Subir(c.Context(), GetIdentity(c), tipo, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SubirTestigo godoc
// @Summary      Subir contrato o reglamento firmado en presencia de un admin
// @Tags         documentos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        user_id  formData  string  true  "usuario dueño del documento"
// @Param        tipo     formData  string  true  "contrato | reglamento"
// @Param        archivo  formData  file    true  "archivo PDF"
// @Success      201      {object}  dto.DocumentoResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /api/documentos/testigo [post]
func (h *DocumentoHandler) SubirTestigo(c *fiber.Ctx) error {
	userID := c.FormValue("user_id")
	tipo := c.FormValue("tipo")
	if userID == "" || tipo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id y tipo son requeridos"})
	}
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo es requerido"})
	}
	in, cerrar, err := subidaDesdeForm(fh)
	if err != nil {
		return handleError(c, err)
	}
	defer cerrar()
	out, err := h.uc.SubirTestigo(c.Context(), GetIdentity(c), userID, tipo, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SubirFoto godoc
// @Summary      Subir la foto de perfil propia (JPEG/PNG)
// @Tags         documentos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "imagen JPEG o PNG"
// @Success      201      {object}  dto.DocumentoResponse
// @Router       /api/documentos/foto [post]
func (h *DocumentoHandler) SubirFoto(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo es requerido"})
	}
	in, cerrar, err := subidaDesdeForm(fh)
	if err != nil {
		return handleError(c, err)
	}
	defer cerrar()
	out, err := h.uc.SubirFoto(c.Context(), GetIdentity(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// revisarRequest entrada para aceptar o rechazar un documento.
type revisarRequest struct {
	Status     string `json:"status"` // aceptado | rechazado
	Comentario string `json:"comentario"`
}

// Revisar godoc
// @Summary      Aceptar o rechazar un documento (admin)
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID del documento"
// @Param        body  body  revisarRequest  true  "status, comentario"
// @Success      200   {object}  dto.DocumentoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/revisar [post]
func (h *DocumentoHandler) Revisar(c *fiber.Ctx) error {
	var in revisarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Revisar(GetIdentity(c), c.Params("id"), in.Status, in.Comentario)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Archivo godoc
// @Summary      Descargar un archivo protegido del expediente (solo PDF, inline)
// @Tags         documentos
// @Security     Bearer
// @Produce      application/pdf
// @Param        key  path  string  true  "llave del archivo"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/archivos/{key} [get]
func (h *DocumentoHandler) Archivo(c *fiber.Ctx) error {
	key := c.Params("*")
	rc, err := h.uc.Archivo(c.Context(), GetIdentity(c), key)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "inline")
	return c.SendStream(rc)
}

// registrarFirmaRequest entrada para registrar una transacción de firma.
type registrarFirmaRequest struct {
	Tipo       string `json:"tipo"` // contrato | reglamento
	ExternalID string `json:"external_id"`
}

// RegistrarFirma godoc
// @Summary      Registrar la sesión del widget de firma del propio usuario
// @Tags         firmas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  registrarFirmaRequest  true  "tipo, external_id"
// @Success      201   {object}  dto.FirmaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/firmas [post]
func (h *DocumentoHandler) RegistrarFirma(c *fiber.Ctx) error {
	var in registrarFirmaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Tipo == "" || in.ExternalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo y external_id son requeridos"})
	}
	out, err := h.uc.RegistrarFirma(GetIdentity(c), in.Tipo, in.ExternalID)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Webhook godoc
// @Summary      Callback de estado del proveedor de firma
// @Tags         firmas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WebhookFirmaRequest  true  "external_id, status"
// @Success      200   {object}  dto.OKResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/firmas/webhook [post]
func (h *DocumentoHandler) Webhook(c *fiber.Ctx) error {
	secret := c.Get("X-Webhook-Secret")
	if h.webhookSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "firma del webhook inválida"})
	}
	var in dto.WebhookFirmaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ExternalID == "" || in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "external_id y status son requeridos"})
	}
	if err := h.uc.WebhookFirma(in); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}
