package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
)

// CookieConfig parámetros de la cookie de sesión.
type CookieConfig struct {
	Name       string
	ExpMinutes int
	Secure     bool
}

// AuthHandler maneja login, registro, recuperación de contraseña y suplantación.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// setSession emite la cookie HTTP-only con el token de sesión.
func (h *AuthHandler) setSession(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.cookie.ExpMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Login godoc
// @Summary      Iniciar sesión con email y contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return handleError(c, err)
	}
	h.setSession(c, out.Token)
	return c.JSON(out)
}

// GoogleLogin godoc
// @Summary      Iniciar sesión con una credencial de Google (solo staff)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GoogleLoginRequest  true  "credential"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/google [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var in dto.GoogleLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Credential == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "credential es requerido"})
	}
	out, err := h.uc.GoogleLogin(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	h.setSession(c, out.Token)
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar un candidato
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.LoginResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return handleError(c, err)
	}
	h.setSession(c, out.Token)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Logout godoc
// @Summary      Cerrar la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.OKResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(dto.OKResponse{OK: true})
}

// ForgotPassword godoc
// @Summary      Solicitar enlace de recuperación de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.OKResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	if err := h.uc.ForgotPassword(in); err != nil {
		return handleError(c, err)
	}
	// Misma respuesta exista o no la cuenta.
	return c.JSON(dto.OKResponse{OK: true, Message: "si la cuenta existe, enviamos un correo con instrucciones"})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con un token de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, password"
// @Success      200   {object}  dto.OKResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Token == "" || len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token y password (mínimo 8 caracteres) son requeridos"})
	}
	if err := h.uc.ResetPassword(c.Context(), in); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true, Message: "contraseña actualizada"})
}

// Impersonate godoc
// @Summary      Asumir la identidad de un admin (solo superadmin)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImpersonateRequest  true  "admin_id"
// @Success      200   {object}  dto.LoginResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/impersonate [post]
func (h *AuthHandler) Impersonate(c *fiber.Ctx) error {
	var in dto.ImpersonateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AdminID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "admin_id es requerido"})
	}
	out, err := h.uc.Impersonate(GetIdentity(c), in.AdminID)
	if err != nil {
		return handleError(c, err)
	}
	h.setSession(c, out.Token)
	return c.JSON(out)
}

// StopImpersonation godoc
// @Summary      Terminar la suplantación y restaurar la sesión original
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LoginResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/impersonate/stop [post]
func (h *AuthHandler) StopImpersonation(c *fiber.Ctx) error {
	out, err := h.uc.StopImpersonation(GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	h.setSession(c, out.Token)
	return c.JSON(out)
}
