package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-orders-api/internal/application/auth"
	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-orders-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), store
}

func TestRegisterUser_RolPorDefectoYEmailNormalizado(t *testing.T) {
	uc, _ := newAuth()
	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Luis", Email: "  Luis@Tienda.COM ", Password: "contraseña",
	})
	require.NoError(t, err)
	assert.Equal(t, "luis@tienda.com", user.Email)
	assert.Equal(t, entity.RoleEmployee, user.Role)
	assert.True(t, user.IsActive)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "sin-arroba", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678", Role: "Root"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.com", Password: "87654321"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, domain.KindEmailExists, domain.KindOf(err))
}

func TestLogin_TokenConRol(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "jefa@b.com", Password: "12345678", Role: entity.RoleManager})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "jefa@b.com", Password: "12345678"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	now := time.Now().UTC()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "activo@b.com", Password: "12345678"})
	require.NoError(t, err)

	// un usuario desactivado conserva su hash pero no puede entrar
	active, err := store.Users().FindByEmail(ctx, "activo@b.com")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: "u-inactivo", Email: "inactivo@b.com", PasswordHash: active.PasswordHash,
		Role: entity.RoleEmployee, IsActive: false, CreatedAt: now, UpdatedAt: now,
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "inactivo@b.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
