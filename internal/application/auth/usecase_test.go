package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/maestros-api/internal/application/auth"
	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/infrastructure/memory"
	"github.com/jhoicas/maestros-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepository) {
	t.Helper()
	users := memory.NewStore().Users()
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, nil), users
}

func TestRegisterUser_RolPorDefectoYHash(t *testing.T) {
	uc, users := newAuth(t)
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: " ana@maestros.test ", Password: "password-123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, out.Role)
	assert.Equal(t, "ana@maestros.test", out.Email)
	assert.Equal(t, "ana@maestros.test", out.Name, "sin nombre se usa el email")

	stored, err := users.FindByEmail(context.Background(), "ana@maestros.test")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password-123", stored.PasswordHash)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	cases := []struct {
		name  string
		in    dto.RegisterRequest
		field string
	}{
		{"email vacío", dto.RegisterRequest{Password: "password-123"}, "email"},
		{"password corta", dto.RegisterRequest{Email: "a@b.test", Password: "corta"}, "password"},
		{"rol desconocido", dto.RegisterRequest{Email: "a@b.test", Password: "password-123", Role: "root"}, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newAuth(t)
			_, err := uc.RegisterUser(context.Background(), tc.in)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth(t)
	in := dto.RegisterRequest{Email: "ana@maestros.test", Password: "password-123"}
	_, err := uc.RegisterUser(context.Background(), in)
	require.NoError(t, err)

	in.Email = "ANA@maestros.test"
	_, err = uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@maestros.test", Password: "password-123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@maestros.test", Password: "password-123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.True(t, uc.ValidateToken(out.Token))

	id, err := jwt.Parse(secret, "test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id.UserID)
	assert.Equal(t, "ana@maestros.test", id.Email)
	assert.Equal(t, entity.RoleAdmin, id.Role)

	_, err = jwt.Parse(secret, "otro-emisor", out.Token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@maestros.test", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@maestros.test", Password: "password-123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Usuario inactivo.
	hash, err := bcrypt.GenerateFromPassword([]byte("password-123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &entity.User{
		ID: "u-inactivo", Email: "baja@maestros.test", PasswordHash: string(hash), Status: entity.UserStatusInactive,
	}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@maestros.test", Password: "password-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestValidateToken_Basura(t *testing.T) {
	uc, _ := newAuth(t)
	assert.False(t, uc.ValidateToken("no.es.jwt"))
}

func TestEnsureAdmin(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "", "x"), "sin email no hace nada")
	require.NoError(t, uc.EnsureAdmin(ctx, "admin@maestros.test", "admin-password"))
	require.NoError(t, uc.EnsureAdmin(ctx, "admin@maestros.test", "otra"), "idempotente")

	u, err := users.FindByEmail(ctx, "admin@maestros.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@maestros.test", Password: "admin-password"})
	assert.NoError(t, err, "la contraseña original sigue vigente")
}
