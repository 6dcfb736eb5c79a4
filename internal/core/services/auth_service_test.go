package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/core/services"
	"github.com/SscSPs/payhub_backend/internal/platform/config"
	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAccessToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "payhub"}
	svc := services.NewTokenService(cfg)

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.User{UserID: "acc_123"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "acc_123", claims.Subject)
}

func TestCaptchaVerifier_NoSecretAllowsEverything(t *testing.T) {
	ok, err := services.NewCaptchaVerifier("").Verify(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCaptchaVerifier_Verify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "shh", r.PostForm.Get("secret"))
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("response") == "good-token" {
			_, _ = w.Write([]byte(`{"success": true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer server.Close()

	v := services.NewCaptchaVerifier("shh", services.WithVerifyURL(server.URL), services.WithHTTPClient(server.Client()))

	ok, err := v.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify(context.Background(), "forged")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCaptchaVerifier_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	v := services.NewCaptchaVerifier("shh", services.WithVerifyURL(server.URL))
	ok, err := v.Verify(context.Background(), "token")
	assert.Error(t, err)
	assert.False(t, ok)
}
