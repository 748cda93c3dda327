// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/platform/sec"
)

const issuer = "shloka-console"

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip verifies that a signed token verifies back to the same claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := generateKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)

	token, err := service.GenerateSessionToken("session-1", "editor@example.org", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "editor@example.org", claims.Email)
	assert.Equal(t, "editor@example.org", claims.Subject)
}

/*
TestTokenService_Rejects covers expired, foreign, mis-issued, unsigned,
sessionless and malformed tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	key := generateKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)

	otherKey := generateKey(t)
	foreignService := sec.NewTokenServiceFromKeys(otherKey, &otherKey.PublicKey, issuer)
	otherIssuer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "someone-else")

	expired, err := service.GenerateSessionToken("session-1", "editor@example.org", -time.Minute)
	require.NoError(t, err)

	foreign, err := foreignService.GenerateSessionToken("session-1", "editor@example.org", time.Minute)
	require.NoError(t, err)

	misIssued, err := otherIssuer.GenerateSessionToken("session-1", "editor@example.org", time.Minute)
	require.NoError(t, err)

	sessionless, err := service.GenerateSessionToken("", "editor@example.org", time.Minute)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		SessionID: "session-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"foreign_key", foreign},
		{"wrong_issuer", misIssued},
		{"no_session", sessionless},
		{"alg_none", unsigned},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestNewTokenService_FromFiles loads PEM keys from disk and reports unreadable paths.
*/
func TestNewTokenService_FromFiles(t *testing.T) {
	key := generateKey(t)
	dir := t.TempDir()

	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	privateDER := x509.MarshalPKCS1PrivateKey(key)
	require.NoError(t, os.WriteFile(privatePath, pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: privateDER}), 0o600))

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(publicPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER}), 0o600))

	service, err := sec.NewTokenService(privatePath, publicPath, issuer)
	require.NoError(t, err)

	token, err := service.GenerateSessionToken("session-1", "editor@example.org", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(token)
	assert.NoError(t, err)

	_, err = sec.NewTokenService(filepath.Join(dir, "missing.pem"), publicPath, issuer)
	assert.ErrorContains(t, err, "read key")

	_, err = sec.NewTokenService(publicPath, publicPath, issuer)
	assert.ErrorContains(t, err, "parse key")
}
