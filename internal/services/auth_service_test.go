// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasshouse/editions-backend/internal/config"
	"github.com/glasshouse/editions-backend/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = 1
	cfg.JWT.RefreshTokenTTL = 24
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	return NewAuthService(db, cfg)
}

func validRegistration() *RegisterRequest {
	return &RegisterRequest{
		Username: "alice_seller",
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
		Address:  sellerAddr,
		UserType: "seller",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	resp, err := auth.Register(validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, sellerAddr, resp.User.Address)

	// The issued token carries the settlement address.
	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sellerAddr, claims.Address)
	assert.Equal(t, "seller", claims.UserType)

	login, err := auth.Login(&LoginRequest{Email: "alice@example.com", Password: "Sup3r$ecret"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(validRegistration())
	require.NoError(t, err)

	dup := validRegistration()
	dup.Email = "other@example.com"
	dup.Username = "someone_else"
	// Same settlement address
	_, err = auth.Register(dup)
	assert.Error(t, err)
}

func TestRegisterValidation(t *testing.T) {
	auth := newAuthService(t)

	req := validRegistration()
	req.Address = "not-an-address"
	_, err := auth.Register(req)
	assert.Error(t, err)

	req = validRegistration()
	req.Password = "weak"
	_, err = auth.Register(req)
	assert.Error(t, err)

	req = validRegistration()
	req.UserType = "admin" // not self-assignable
	_, err = auth.Register(req)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(validRegistration())
	require.NoError(t, err)

	_, err = auth.Login(&LoginRequest{Email: "alice@example.com", Password: "Wr0ng$ecret"})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	auth := newAuthService(t)

	resp, err := auth.Register(validRegistration())
	require.NoError(t, err)

	refreshed, err := auth.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = auth.RefreshToken("garbage")
	assert.Error(t, err)
}
