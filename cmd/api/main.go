package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/internal/application/usecase"
	"github.com/talentohumano/expediente-api/internal/infrastructure/email"
	infragoogle "github.com/talentohumano/expediente-api/internal/infrastructure/google"
	"github.com/talentohumano/expediente-api/internal/infrastructure/legacy"
	infrapdf "github.com/talentohumano/expediente-api/internal/infrastructure/pdf"
	"github.com/talentohumano/expediente-api/internal/infrastructure/postgres"
	"github.com/talentohumano/expediente-api/internal/infrastructure/storage"
	httpRouter "github.com/talentohumano/expediente-api/internal/interfaces/http"
	"github.com/talentohumano/expediente-api/pkg/config"
	"github.com/talentohumano/expediente-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	plantelRepo := postgres.NewPlantelRepository(pool)
	checklistRepo := postgres.NewChecklistRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	sigRepo := postgres.NewSignatureRepository(pool)
	puestoRepo := postgres.NewPuestoRepository(pool)
	tokenRepo := postgres.NewResetTokenRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var files ports.FileStore
	switch cfg.Storage.Driver {
	case "s3":
		files, err = storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
	default:
		files, err = storage.NewLocalStore(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento local")
		}
	}

	var mailer ports.Mailer
	if cfg.Mail.Driver == "sendgrid" {
		mailer = email.NewSendgridMailer(cfg.Mail)
	} else {
		mailer = email.NewConsoleMailer()
	}

	psico, err := legacy.NewReader(cfg.Legacy)
	if err != nil {
		log.Fatal().Err(err).Msg("bases heredadas de psicométricos")
	}
	defer psico.Close()

	googleVerifier := infragoogle.NewVerifier(cfg.Google.ClientID)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(
		userRepo, plantelRepo, checklistRepo, tokenRepo, txRunner,
		mailer, googleVerifier,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		cfg.Checklist.ResetTokenTTL,
		cfg.App.BaseURL,
	)
	selfUC := usecase.NewSelfUseCase(userRepo, plantelRepo)
	userAdminUC := usecase.NewUserAdminUseCase(
		userRepo, plantelRepo, checklistRepo, docRepo, sigRepo,
		txRunner, files, psico,
	)
	plantelUC := usecase.NewPlantelUseCase(plantelRepo, userRepo)
	progresoUC := usecase.NewProgresoUseCase(
		userRepo, plantelRepo, checklistRepo, docRepo, sigRepo,
		cfg.Checklist.MinItems,
	)
	puestoUC := usecase.NewPuestoUseCase(puestoRepo, userRepo)
	documentoUC := usecase.NewDocumentoUseCase(
		userRepo, checklistRepo, docRepo, sigRepo, files,
		cfg.Checklist.MinItems,
	)
	pdfUC := usecase.NewExpedientePDFUseCase(documentoUC, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    25 << 20, // subidas de hasta 20MB más overhead del multipart
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Expediente RH API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SelfUC:      selfUC,
		UserAdminUC: userAdminUC,
		PlantelUC:   plantelUC,
		ProgresoUC:  progresoUC,
		PuestoUC:    puestoUC,
		DocumentoUC: documentoUC,
		PDFUC:       pdfUC,
		JWTSecret:   cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Name:       cfg.JWT.CookieName,
			ExpMinutes: cfg.JWT.Expiration,
			Secure:     cfg.App.Env == "production",
		},
		WebhookSecret: cfg.Firmas.WebhookSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
