package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	SelfUC        *usecase.SelfUseCase
	UserAdminUC   *usecase.UserAdminUseCase
	PlantelUC     *usecase.PlantelUseCase
	ProgresoUC    *usecase.ProgresoUseCase
	PuestoUC      *usecase.PuestoUseCase
	DocumentoUC   *usecase.DocumentoUseCase
	PDFUC         *usecase.ExpedientePDFUseCase
	JWTSecret     string
	Cookie        CookieConfig
	WebhookSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	selfHandler := NewSelfHandler(deps.SelfUC)
	userHandler := NewUserHandler(deps.UserAdminUC, deps.DocumentoUC, deps.PDFUC)
	plantelHandler := NewPlantelHandler(deps.PlantelUC, deps.ProgresoUC)
	puestoHandler := NewPuestoHandler(deps.PuestoUC)
	docHandler := NewDocumentoHandler(deps.DocumentoUC, deps.PDFUC, deps.WebhookSecret)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.OKResponse{OK: true})
	})

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.GoogleLogin)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Webhook del proveedor de firmas (autenticado por secreto compartido)
	api.Post("/firmas/webhook", docHandler.Webhook)

	// Rutas protegidas (cookie de sesión o Bearer)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Cookie.Name))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/impersonate", RequireRole(OpSuplantar), authHandler.Impersonate)
	// El stop lo ejecuta la sesión suplantada (rol admin); el caso de uso
	// valida que exista un suplantador en el token.
	protected.Post("/auth/impersonate/stop", authHandler.StopImpersonation)

	// Cuenta propia
	me := protected.Group("/me")
	me.Get("/", selfHandler.Me)
	me.Patch("/email", selfHandler.UpdateEmail)
	me.Patch("/identificadores", selfHandler.UpdateIdentificadores)
	me.Patch("/plantel", selfHandler.UpdatePlantel)

	// Expediente propio: subidas, estado y firmas
	documentos := protected.Group("/documentos")
	documentos.Get("/estado", docHandler.Estado)
	documentos.Post("/subir", docHandler.Subir)
	documentos.Post("/foto", docHandler.SubirFoto)
	documentos.Post("/testigo", RequireRole(OpSubirTestigo), docHandler.SubirTestigo)
	documentos.Post("/:id/revisar", RequireRole(OpRevisarDocumentos), docHandler.Revisar)

	protected.Post("/firmas", docHandler.RegistrarFirma)
	protected.Get("/archivos/*", docHandler.Archivo)

	// Gestión de usuarios (staff)
	users := protected.Group("/users")
	users.Get("/", RequireRole(OpVerUsuarios), userHandler.List)
	users.Post("/aprobar-bulk", RequireRole(OpAprobarCandidatos), userHandler.AprobarBulk)
	users.Get("/:id/expediente", RequireRole(OpVerUsuarios), userHandler.Expediente)
	users.Get("/:id/expediente/pdf", RequireRole(OpVerUsuarios), userHandler.ExpedientePDF)
	users.Get("/:id/psicometricos", RequireRole(OpVerPsicometricos), userHandler.Psicometricos)
	users.Patch("/:id/ficha", RequireRole(OpGestionarUsuarios), userHandler.UpdateFicha)
	users.Patch("/:id/estatus", RequireRole(OpGestionarUsuarios), userHandler.SetEstatus)
	users.Patch("/:id/plantel", RequireRole(OpGestionarUsuarios), userHandler.SetPlantel)
	users.Post("/:id/aprobar", RequireRole(OpAprobarCandidatos), userHandler.Aprobar)
	users.Post("/:id/aprobar-expediente", RequireRole(OpAprobarCandidatos), userHandler.AprobarExpediente)
	users.Delete("/:id", RequireRole(OpBorrarUsuarios), userHandler.Delete)

	protected.Get("/admins", RequireRole(OpGestionarAdmins), userHandler.ListAdmins)

	// Planteles: el listado es visible para todos los roles (un candidato
	// escoge su plantel); el resto es de staff.
	planteles := protected.Group("/planteles")
	planteles.Get("/", plantelHandler.List)
	planteles.Post("/", RequireRole(OpGestionarPlanteles), plantelHandler.Create)
	planteles.Get("/admins/matrix", RequireRole(OpGestionarAdmins), plantelHandler.Matrix)
	planteles.Put("/admins/matrix", RequireRole(OpGestionarAdmins), plantelHandler.ToggleMatrix)
	planteles.Get("/progreso", RequireRole(OpVerProgreso), plantelHandler.ProgresoGlobal)
	planteles.Get("/:id/progreso", RequireRole(OpVerProgreso), plantelHandler.ProgresoPlantel)
	planteles.Patch("/:id", RequireRole(OpGestionarPlanteles), plantelHandler.Update)
	planteles.Delete("/:id", RequireRole(OpGestionarPlanteles), plantelHandler.Delete)
	planteles.Post("/:id/admins/:userID", RequireRole(OpGestionarAdmins), plantelHandler.AssignAdmin)
	planteles.Delete("/:id/admins/:userID", RequireRole(OpGestionarAdmins), plantelHandler.UnassignAdmin)

	// Catálogo de puestos
	puestos := protected.Group("/puestos")
	puestos.Get("/", RequireRole(OpVerPuestos), puestoHandler.List)
	puestos.Post("/", RequireRole(OpGestionarPuestos), puestoHandler.Create)
	puestos.Post("/importar", RequireRole(OpGestionarPuestos), puestoHandler.Importar)
	puestos.Patch("/:id", RequireRole(OpGestionarPuestos), puestoHandler.Update)
	puestos.Delete("/:id", RequireRole(OpGestionarPuestos), puestoHandler.Delete)
}
