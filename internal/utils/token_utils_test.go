package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := utils.GenerateJWT("user-1", "secret", time.Hour, "payhub")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "payhub", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, _, err := utils.GenerateJWT("user-1", "secret", -time.Minute, "payhub")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWT_MissingSubject(t *testing.T) {
	token, _, err := utils.GenerateJWT("", "secret", time.Hour, "payhub")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, utils.ErrMissingSubject)
}
