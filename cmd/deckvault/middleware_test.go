package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nkalugin/deckvault/internal/auth"
)

func signToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(key)
	assert.NoError(t, err)
	return s
}

func TestAuthenticateJWT(t *testing.T) {
	key := []byte("test-secret")
	owner := uuid.New()
	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+signToken(t, key, jwt.MapClaims{
		"sub": owner.String(),
		"usn": "cesar",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))

	ctx, err := authenticateJWT(context.Background(), hdr, key)
	assert.NoError(t, err)
	user := auth.UserFromContext(ctx)
	assert.NotNil(t, user)
	assert.Equal(t, owner, user.OwnerID)
	assert.Equal(t, "cesar", user.Username)
}

func TestAuthenticateJWTRejects(t *testing.T) {
	key := []byte("test-secret")
	owner := uuid.New()

	_, err := authenticateJWT(context.Background(), http.Header{}, key)
	assert.Error(t, err, "no header")

	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+signToken(t, []byte("other-key"), jwt.MapClaims{
		"sub": owner.String(), "usn": "cesar",
	}))
	_, err = authenticateJWT(context.Background(), hdr, key)
	assert.Error(t, err, "wrong signing key")

	hdr = http.Header{}
	hdr.Set("Authorization", "Bearer "+signToken(t, key, jwt.MapClaims{
		"sub": "42", "usn": "cesar",
	}))
	_, err = authenticateJWT(context.Background(), hdr, key)
	assert.Error(t, err, "sub is not a uuid")

	hdr = http.Header{}
	hdr.Set("Authorization", "Bearer "+signToken(t, key, jwt.MapClaims{
		"sub": owner.String(),
	}))
	_, err = authenticateJWT(context.Background(), hdr, key)
	assert.Error(t, err, "missing usn claim")
}
