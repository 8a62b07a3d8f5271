package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "agrobank",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("farmer-42", []string{RoleFarmer})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "farmer-42", claims.UserID)
	assert.True(t, claims.HasRole(RoleFarmer))
	assert.False(t, claims.HasRole(RoleBank))
	assert.Equal(t, "agrobank", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.GenerateToken("bank-1", []string{RoleBank})
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{Secret: "different-secret", Issuer: "agrobank"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "someone-else", Expiration: time.Hour})
	require.NoError(t, err)
	token, err := issuer.GenerateToken("admin-1", []string{RoleAdmin})
	require.NoError(t, err)

	validator, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "agrobank"})
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issuer")
}

func TestNewJWTService_NoConfig(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}
