package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentohumano/expediente-api/internal/application/auth"
	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

// Fakes mínimos para el caso de uso de auth.

type userStore struct {
	users map[string]*entity.User
}

func (s *userStore) Create(u *entity.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userStore) GetByID(id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) GetByEmail(email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *userStore) Update(u *entity.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userStore) Delete(id string) error                                { delete(s.users, id); return nil }
func (s *userStore) List(_, _ int) ([]*entity.User, error)                 { return nil, nil }
func (s *userStore) ListByRole(_ entity.Role) ([]*entity.User, error)      { return nil, nil }
func (s *userStore) ListPersonalActivo(_ string) ([]*entity.User, error)   { return nil, nil }
func (s *userStore) ListSinPlantel() ([]*entity.User, error)               { return nil, nil }
func (s *userStore) ExisteConPuesto(_ string) (bool, error)                { return false, nil }

type tokenStore struct {
	tokens map[string]*entity.PasswordResetToken
}

func (s *tokenStore) Create(t *entity.PasswordResetToken) error {
	cp := *t
	s.tokens[t.ID] = &cp
	return nil
}

func (s *tokenStore) GetByToken(token string) (*entity.PasswordResetToken, error) {
	for _, t := range s.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *tokenStore) DeleteByUser(userID string) error {
	for k, t := range s.tokens {
		if t.UserID == userID {
			delete(s.tokens, k)
		}
	}
	return nil
}

func (s *tokenStore) MarkUsed(id string) error {
	if t, ok := s.tokens[id]; ok {
		t.Used = true
	}
	return nil
}

type checklistStore struct {
	items []*entity.ChecklistItem
}

func (s *checklistStore) Upsert(it *entity.ChecklistItem) error {
	s.items = append(s.items, it)
	return nil
}
func (s *checklistStore) GetByUserAndType(_, _ string) (*entity.ChecklistItem, error) {
	return nil, nil
}
func (s *checklistStore) ListByUser(_ string) ([]*entity.ChecklistItem, error) { return nil, nil }
func (s *checklistStore) DeleteByUserAndType(_, _ string) error                { return nil }
func (s *checklistStore) DeleteByUser(_ string) error                          { return nil }

type plantelStore struct{}

func (plantelStore) Create(_ *entity.Plantel) error                  { return nil }
func (plantelStore) GetByID(_ string) (*entity.Plantel, error)       { return nil, nil }
func (plantelStore) Update(_ *entity.Plantel) error                  { return nil }
func (plantelStore) Delete(_ string) error                           { return nil }
func (plantelStore) List() ([]*entity.Plantel, error)                { return nil, nil }
func (plantelStore) CountUsuarios(_ string) (int, error)             { return 0, nil }
func (plantelStore) CountAdmins(_ string) (int, error)               { return 0, nil }
func (plantelStore) AssignAdmin(_, _ string) error                   { return nil }
func (plantelStore) UnassignAdmin(_, _ string) error                 { return nil }
func (plantelStore) PlantelesDeAdmin(_ string) ([]string, error)     { return nil, nil }
func (plantelStore) Asignaciones() ([]*entity.PlantelAdmin, error)   { return nil, nil }

type mailerSpy struct {
	to      string
	subject string
	text    string
}

func (m *mailerSpy) Send(to, subject, _, text string) error {
	m.to, m.subject, m.text = to, subject, text
	return nil
}

type googleStub struct {
	email string
	err   error
}

func (g googleStub) Verify(_ context.Context, _ string) (string, string, error) {
	return g.email, "Cuenta Google", g.err
}

type directTx struct {
	users  *userStore
	tokens *tokenStore
}

func (t *directTx) RunReset(_ context.Context, fn func(repository.UserRepository, repository.ResetTokenRepository) error) error {
	return fn(t.users, t.tokens)
}

func (t *directTx) RunBorradoUsuario(_ context.Context, fn func(
	repository.UserRepository,
	repository.ChecklistRepository,
	repository.DocumentRepository,
	repository.SignatureRepository,
	repository.ResetTokenRepository,
	repository.PlantelRepository,
) error) error {
	return fn(t.users, &checklistStore{}, nil, nil, t.tokens, plantelStore{})
}

type authEnv struct {
	uc        *auth.AuthUseCase
	users     *userStore
	tokens    *tokenStore
	checklist *checklistStore
	mailer    *mailerSpy
}

func newAuthEnv(google googleStub) *authEnv {
	users := &userStore{users: map[string]*entity.User{}}
	tokens := &tokenStore{tokens: map[string]*entity.PasswordResetToken{}}
	checklist := &checklistStore{}
	mailer := &mailerSpy{}
	uc := auth.NewAuthUseCase(
		users, plantelStore{}, checklist, tokens,
		&directTx{users: users, tokens: tokens},
		mailer, google,
		auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "test"},
		30*time.Minute,
		"http://localhost:3000",
	)
	return &authEnv{uc: uc, users: users, tokens: tokens, checklist: checklist, mailer: mailer}
}

func seedUser(t *testing.T, env *authEnv, id, email, password string, role entity.Role, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.users.Create(&entity.User{
		ID: id, Email: email, PasswordHash: string(hash),
		Name: "Usuario " + id, Role: role, Active: active,
	}))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "u1", "ana@rh.mx", "secreta123", entity.RoleCandidato, true)

	_, err := env.uc.Login(dto.LoginRequest{Email: "ana@rh.mx", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.uc.Login(dto.LoginRequest{Email: "nadie@rh.mx", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInactivaProhibida(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "u1", "ana@rh.mx", "secreta123", entity.RoleCandidato, false)

	_, err := env.uc.Login(dto.LoginRequest{Email: "ana@rh.mx", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGoogleLogin_SoloCuentasStaffExistentes(t *testing.T) {
	env := newAuthEnv(googleStub{email: "rosa@rh.mx"})
	seedUser(t, env, "u1", "rosa@rh.mx", "x", entity.RoleCandidato, true)

	// La cuenta existe pero no es staff: misma respuesta que si no existiera.
	_, err := env.uc.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Credential: "tok"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	env2 := newAuthEnv(googleStub{email: "rosa@rh.mx"})
	seedUser(t, env2, "u1", "rosa@rh.mx", "x", entity.RoleAdmin, true)
	out, err := env2.uc.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Credential: "tok"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestRegister_SiembraChecklistCompleto(t *testing.T) {
	env := newAuthEnv(googleStub{})

	out, err := env.uc.Register(dto.RegisterRequest{Email: "nuevo@rh.mx", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleCandidato), out.User.Role)

	// 10 pasos de autoservicio + contrato + reglamento + proyectivos + foto.
	assert.Len(t, env.checklist.items, 14)
	var foto, proyectivos *entity.ChecklistItem
	for _, it := range env.checklist.items {
		switch it.Type {
		case entity.DocFoto:
			foto = it
		case entity.DocProyectivos:
			proyectivos = it
		}
	}
	require.NotNil(t, foto)
	assert.False(t, foto.Required)
	require.NotNil(t, proyectivos)
	assert.True(t, proyectivos.AdminOnly)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "u1", "ana@rh.mx", "x", entity.RoleCandidato, true)

	_, err := env.uc.Register(dto.RegisterRequest{Email: "ana@rh.mx", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestForgotPassword_CuentaInexistenteNoFalla(t *testing.T) {
	env := newAuthEnv(googleStub{})

	require.NoError(t, env.uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "nadie@rh.mx"}))
	assert.Empty(t, env.mailer.to, "no debe enviarse correo para cuentas inexistentes")
}

func TestResetPassword_TokenDeUnSoloUso(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "u1", "ana@rh.mx", "vieja1234", entity.RoleCandidato, true)

	require.NoError(t, env.uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "ana@rh.mx"}))
	require.NotEmpty(t, env.mailer.text)

	// El token viaja en el enlace del correo.
	idx := strings.Index(env.mailer.text, "token=")
	require.GreaterOrEqual(t, idx, 0)
	token := env.mailer.text[idx+len("token="):]
	token = strings.Fields(token)[0]

	ctx := context.Background()
	require.NoError(t, env.uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, Password: "nueva1234"}))

	// La contraseña nueva funciona y la vieja no.
	_, err := env.uc.Login(dto.LoginRequest{Email: "ana@rh.mx", Password: "nueva1234"})
	require.NoError(t, err)
	_, err = env.uc.Login(dto.LoginRequest{Email: "ana@rh.mx", Password: "vieja1234"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Reusar el token falla: es de un solo uso.
	err = env.uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, Password: "otra12345"})
	assert.ErrorIs(t, err, domain.ErrTokenInvalido)
}

func TestForgotPassword_EmitirInvalidaElTokenAnterior(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "u1", "ana@rh.mx", "vieja1234", entity.RoleCandidato, true)

	require.NoError(t, env.uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "ana@rh.mx"}))
	primero := env.mailer.text
	require.NoError(t, env.uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "ana@rh.mx"}))

	idx := strings.Index(primero, "token=")
	require.GreaterOrEqual(t, idx, 0)
	token := strings.Fields(primero[idx+len("token="):])[0]

	err := env.uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: token, Password: "nueva1234"})
	assert.ErrorIs(t, err, domain.ErrTokenInvalido)
}

func TestImpersonate_UnSoloNivel(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "sa1", "sa@rh.mx", "x", entity.RoleSuperadmin, true)
	seedUser(t, env, "a1", "rosa@rh.mx", "x", entity.RoleAdmin, true)

	sa := auth.Identity{UserID: "sa1", Email: "sa@rh.mx", Role: entity.RoleSuperadmin}
	out, err := env.uc.Impersonate(sa, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", out.User.ID)

	// Una sesión ya suplantada no puede volver a suplantar.
	suplantada := auth.Identity{
		UserID: "a1", Role: entity.RoleAdmin,
		Impersonador: &auth.Impersonador{UserID: "sa1", Email: "sa@rh.mx"},
	}
	_, err = env.uc.Impersonate(suplantada, "a1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestImpersonate_SoloHaciaAdminsActivos(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "sa1", "sa@rh.mx", "x", entity.RoleSuperadmin, true)
	seedUser(t, env, "u1", "ana@rh.mx", "x", entity.RoleCandidato, true)
	seedUser(t, env, "a2", "ines@rh.mx", "x", entity.RoleAdmin, false)

	sa := auth.Identity{UserID: "sa1", Role: entity.RoleSuperadmin}
	_, err := env.uc.Impersonate(sa, "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = env.uc.Impersonate(sa, "a2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestStopImpersonation_RestauraAlSuperadmin(t *testing.T) {
	env := newAuthEnv(googleStub{})
	seedUser(t, env, "sa1", "sa@rh.mx", "x", entity.RoleSuperadmin, true)

	suplantada := auth.Identity{
		UserID: "a1", Role: entity.RoleAdmin,
		Impersonador: &auth.Impersonador{UserID: "sa1", Email: "sa@rh.mx"},
	}
	out, err := env.uc.StopImpersonation(suplantada)
	require.NoError(t, err)
	assert.Equal(t, "sa1", out.User.ID)

	// Sin suplantación activa no hay nada que terminar.
	normal := auth.Identity{UserID: "sa1", Role: entity.RoleSuperadmin}
	_, err = env.uc.StopImpersonation(normal)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
