package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
	"github.com/talentohumano/expediente-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login con contraseña, login con
// Google, registro de candidatos, recuperación de contraseña y suplantación.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	plantelRepo   repository.PlantelRepository
	checklistRepo repository.ChecklistRepository
	tokenRepo     repository.ResetTokenRepository
	tx            ports.TxRunner
	mailer        ports.Mailer
	google        ports.GoogleVerifier
	jwtCfg        JWTConfig
	resetTTL      time.Duration
	baseURL       string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	plantelRepo repository.PlantelRepository,
	checklistRepo repository.ChecklistRepository,
	tokenRepo repository.ResetTokenRepository,
	tx ports.TxRunner,
	mailer ports.Mailer,
	google ports.GoogleVerifier,
	jwtCfg JWTConfig,
	resetTTL time.Duration,
	baseURL string,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		plantelRepo:   plantelRepo,
		checklistRepo: checklistRepo,
		tokenRepo:     tokenRepo,
		tx:            tx,
		mailer:        mailer,
		google:        google,
		jwtCfg:        jwtCfg,
		resetTTL:      resetTTL,
		baseURL:       baseURL,
	}
}

// Login verifica email/contraseña, genera el token de sesión y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	return uc.sessionFor(user, nil)
}

// GoogleLogin valida la credencial de Google y abre sesión para cuentas de
// staff existentes; no registra cuentas nuevas.
func (uc *AuthUseCase) GoogleLogin(ctx context.Context, in dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	email, _, err := uc.google.Verify(ctx, in.Credential)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Role.EsStaff() {
		// No revelar si la cuenta existe o no.
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	return uc.sessionFor(user, nil)
}

// Register crea un candidato, siembra su checklist de onboarding y abre sesión.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.LoginResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleCandidato,
		Active:       true,
		PlantelID:    in.PlantelID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	if err := uc.seedChecklist(user.ID, now); err != nil {
		return nil, fmt.Errorf("sembrar checklist: %w", err)
	}
	return uc.sessionFor(user, nil)
}

// seedChecklist crea los pasos del expediente para un usuario nuevo.
func (uc *AuthUseCase) seedChecklist(userID string, now time.Time) error {
	seed := func(tipo string, required, adminOnly bool) *entity.ChecklistItem {
		return &entity.ChecklistItem{
			ID:        uuid.New().String(),
			UserID:    userID,
			Type:      tipo,
			Required:  required,
			AdminOnly: adminOnly,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	for tipo := range entity.TiposSubida {
		if err := uc.checklistRepo.Upsert(seed(tipo, true, false)); err != nil {
			return err
		}
	}
	for _, it := range []*entity.ChecklistItem{
		seed(entity.DocContrato, true, false),
		seed(entity.DocReglamento, true, false),
		seed(entity.DocProyectivos, true, true),
		seed(entity.DocFoto, false, false),
	} {
		if err := uc.checklistRepo.Upsert(it); err != nil {
			return err
		}
	}
	return nil
}

// ForgotPassword emite un token de recuperación y envía el correo.
// Para cuentas inexistentes o inactivas no hace nada y no devuelve error,
// para no permitir enumerar cuentas; los fallos reales sí se propagan.
func (uc *AuthUseCase) ForgotPassword(in dto.ForgotPasswordRequest) error {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil || !user.Active {
		return nil
	}
	if err := uc.tokenRepo.DeleteByUser(user.ID); err != nil {
		return fmt.Errorf("invalidar tokens previos: %w", err)
	}
	now := time.Now()
	token := &entity.PasswordResetToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(uc.resetTTL),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.Create(token); err != nil {
		return fmt.Errorf("crear token: %w", err)
	}
	link := fmt.Sprintf("%s/restablecer?token=%s", uc.baseURL, token.Token)
	html := fmt.Sprintf(
		"<p>Hola %s,</p><p>Para restablecer tu contraseña entra a <a href=%q>este enlace</a>. El enlace vence en %d minutos.</p>",
		user.Name, link, int(uc.resetTTL.Minutes()),
	)
	text := fmt.Sprintf("Para restablecer tu contraseña entra a %s (vence en %d minutos).", link, int(uc.resetTTL.Minutes()))
	if err := uc.mailer.Send(user.Email, "Recuperación de contraseña", html, text); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}

// ResetPassword valida el token y cambia la contraseña. Actualizar el hash y
// marcar el token como usado ocurren en una sola transacción.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	t, err := uc.tokenRepo.GetByToken(in.Token)
	if err != nil {
		return err
	}
	if t == nil || !t.Vigente(time.Now()) {
		return domain.ErrTokenInvalido
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.tx.RunReset(ctx, func(users repository.UserRepository, tokens repository.ResetTokenRepository) error {
		user, err := users.GetByID(t.UserID)
		if err != nil {
			return err
		}
		if user == nil || !user.Active {
			return domain.ErrTokenInvalido
		}
		user.PasswordHash = string(hash)
		user.UpdatedAt = time.Now()
		if err := users.Update(user); err != nil {
			return err
		}
		return tokens.MarkUsed(t.ID)
	})
}

// Impersonate abre una sesión con la identidad de un admin conservando en el
// token un apuntador a la identidad superadmin original. Un solo nivel: una
// sesión suplantada no puede volver a suplantar.
func (uc *AuthUseCase) Impersonate(ident Identity, adminID string) (*dto.LoginResponse, error) {
	if ident.EsSuplantacion() {
		return nil, domain.ErrForbidden
	}
	target, err := uc.userRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if target.Role != entity.RoleAdmin || !target.Active {
		return nil, domain.ErrForbidden
	}
	return uc.sessionFor(target, &Impersonador{UserID: ident.UserID, Email: ident.Email})
}

// StopImpersonation restaura la sesión del superadmin original.
func (uc *AuthUseCase) StopImpersonation(ident Identity) (*dto.LoginResponse, error) {
	if !ident.EsSuplantacion() {
		return nil, domain.ErrForbidden
	}
	original, err := uc.userRepo.GetByID(ident.Impersonador.UserID)
	if err != nil {
		return nil, err
	}
	if original == nil || original.Role != entity.RoleSuperadmin || !original.Active {
		return nil, domain.ErrForbidden
	}
	return uc.sessionFor(original, nil)
}

// sessionFor emite el token de sesión para un usuario. Para admins carga los
// planteles asignados para que la autorización no consulte la DB por petición.
func (uc *AuthUseCase) sessionFor(user *entity.User, imp *Impersonador) (*dto.LoginResponse, error) {
	var planteles []string
	if user.Role == entity.RoleAdmin {
		var err error
		planteles, err = uc.plantelRepo.PlantelesDeAdmin(user.ID)
		if err != nil {
			return nil, err
		}
	}
	s := jwt.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		Planteles: planteles,
	}
	if imp != nil {
		s.ImpersonadorID = imp.UserID
		s.ImpersonadorEmail = imp.Email
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, s, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}
