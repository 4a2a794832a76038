package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexile/pharmacy-api/internal/application/auth"
	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/infrastructure/memory"
	"github.com/nexile/pharmacy-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "test"}

func authStore(t *testing.T) *memory.Store {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.New()
	require.NoError(t, store.PutUsers([]entity.User{
		{
			ID: "u1", Name: "Alice", Email: "alice@x.com", Role: entity.RoleOwner,
			PasswordHash: string(hash), SubscriptionStatus: entity.SubscriptionActive,
		},
		{
			ID: "u2", Name: "Bob", Email: "bob@x.com", Role: entity.RoleManager,
			AccessCode: "1234", AssignedBranchIDs: []string{"b1"},
			SubscriptionStatus: entity.SubscriptionActive,
		},
	}))
	return store
}

func TestRegister_DueñoConTrial(t *testing.T) {
	store := authStore(t)
	uc := auth.NewAuthUseCase(store, jwtCfg)

	out, err := uc.Register(dto.RegisterRequest{
		Name: "Dana", Email: "dana@x.com", Password: "supersegura", Role: entity.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, out.Role)
	assert.Equal(t, entity.SubscriptionTrial, out.SubscriptionStatus)
	assert.True(t, out.TrialEndsAt.After(time.Now()))

	users, err := store.Users()
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestRegister_FarmaceuticoRequiereSucursal(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)

	_, err := uc.Register(dto.RegisterRequest{
		Email: "eve@x.com", Password: "supersegura", Role: entity.RolePharmacist,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Register(dto.RegisterRequest{
		Email: "eve@x.com", Password: "supersegura", Role: entity.RolePharmacist, BranchID: "b1",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", out.BranchID)
}

func TestRegister_GerenteNoSeAutoregistra(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)
	_, err := uc.Register(dto.RegisterRequest{
		Email: "mgr@x.com", Password: "supersegura", Role: entity.RoleManager,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicadoCaseInsensitive(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)
	_, err := uc.Register(dto.RegisterRequest{
		Email: "ALICE@X.COM", Password: "supersegura", Role: entity.RoleOwner,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_DueñoPorEmailYPassword(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)

	out, err := uc.Login(dto.LoginRequest{
		Email: "Alice@X.com", Password: "password123", Role: entity.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", out.User.ID)

	userID, role, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleOwner, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)
	_, err := uc.Login(dto.LoginRequest{
		Email: "alice@x.com", Password: "otra-cosa", Role: entity.RoleOwner,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_RolIncorrectoNoEncuentraUsuario(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)
	_, err := uc.Login(dto.LoginRequest{
		Email: "alice@x.com", Password: "password123", Role: entity.RolePharmacist,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_GerentePorCodigoDeAcceso(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)

	out, err := uc.Login(dto.LoginRequest{Role: entity.RoleManager, AccessCode: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "u2", out.User.ID)

	_, _, err = jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
}

func TestLogin_CodigoDeAccesoInvalido(t *testing.T) {
	uc := auth.NewAuthUseCase(authStore(t), jwtCfg)

	_, err := uc.Login(dto.LoginRequest{Role: entity.RoleManager, AccessCode: "9999"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "código vacío nunca coincide")
}

func TestHasActiveSubscription(t *testing.T) {
	store := authStore(t)
	uc := auth.NewAuthUseCase(store, jwtCfg)
	ctx := context.Background()

	ok, err := uc.HasActiveSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	users, err := store.Users()
	require.NoError(t, err)
	users[0].SubscriptionStatus = entity.SubscriptionExpired
	users[1].SubscriptionStatus = entity.SubscriptionTrial
	users[1].TrialEndsAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.PutUsers(users))

	ok, err = uc.HasActiveSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok, "suscripción vencida")

	ok, err = uc.HasActiveSubscription(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, ok, "trial vencido")

	_, err = uc.HasActiveSubscription(ctx, "u-nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
