package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/assetflow/asset-service/internal/auth"
	"github.com/assetflow/asset-service/internal/config"
	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository/memory"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

func newAuthService(t *testing.T) (*AuthService, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", 10)
	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 10, BcryptCost: bcrypt.MinCost}
	return NewAuthService(cfg, memory.NewStore().Users(), tokens), tokens
}

func TestAuthService_RegisterHR(t *testing.T) {
	svc, tokens := newAuthService(t)
	user, token, err := svc.Register(context.Background(), RegisterInput{
		Name:        "Hana",
		Email:       " HR@Acme.io ",
		Password:    "secret1",
		Role:        domain.RoleHR,
		CompanyName: strPtr("Acme"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.io", user.Email)
	assert.Equal(t, domain.DefaultPackageLimit, user.PackageLimit)
	assert.Equal(t, 0, user.CurrentEmployees)
	assert.Equal(t, domain.DefaultSubscription, user.Subscription)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claims, err := tokens.ParseToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Email: "hr@acme.io", Role: domain.RoleHR}, claims.Identity())

	_, _, err = svc.Register(context.Background(), RegisterInput{Name: "Dup", Email: "hr@acme.io", Password: "secret1"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	cases := []RegisterInput{
		{Email: "a@acme.io", Password: "secret1"},
		{Name: "A", Email: "not-an-email", Password: "secret1"},
		{Name: "A", Email: "a@acme.io", Password: "123"},
		{Name: "A", Email: "a@acme.io", Password: "secret1", Role: "admin"},
		{Name: "A", Email: "a@acme.io", Password: "secret1", Role: domain.RoleHR},
	}
	for _, in := range cases {
		_, _, err := svc.Register(context.Background(), in)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "%+v", in)
	}
}

func TestAuthService_LoginAndProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "Eve", Email: "eve@acme.io", Password: "secret1"})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "EVE@acme.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	assert.Zero(t, user.PackageLimit)
	assert.NotEmpty(t, token.Token)

	_, _, err = svc.Login(context.Background(), "eve@acme.io", "wrong-pass")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	_, _, err = svc.Login(context.Background(), "nobody@acme.io", "secret1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	updated, err := svc.UpdateProfile(context.Background(), "eve@acme.io", "Eve Adams", strPtr("https://img/eve.png"))
	require.NoError(t, err)
	assert.Equal(t, "Eve Adams", updated.Name)
	assert.Equal(t, "https://img/eve.png", domain.StringOrEmpty(updated.PhotoURL))

	_, err = svc.UpdateProfile(context.Background(), "ghost@acme.io", "Ghost", nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	_, err = svc.GetProfile(context.Background(), "ghost@acme.io")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
