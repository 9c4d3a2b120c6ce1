package jwt_test

import (
	"testing"
	"time"

	"github.com/folioworks/folio/pkg/config"
	"github.com/folioworks/folio/pkg/infra/jwt"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "top-secret"})

	token, err := m.CreateToken("owner-1", time.Hour)
	require.NoError(t, err)

	claims, err := m.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.OwnerID())
	require.NotNil(t, claims.ExpiresAt)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "a"}).CreateToken("owner-1", 0)
	require.NoError(t, err)

	_, err = jwt.NewJwtManager(&config.ServerConfig{SecretKey: "b"}).DecodeToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestManager_Expired(t *testing.T) {
	claims := gojwt.RegisteredClaims{
		Issuer:    "folio",
		Subject:   "owner-1",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = jwt.NewJwtManager(&config.ServerConfig{SecretKey: "s"}).DecodeToken(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestManager_RequiresSubjectAndSecret(t *testing.T) {
	_, err := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "s"}).CreateToken(" ", 0)
	assert.ErrorIs(t, err, jwt.ErrMissingSubject)

	_, err = jwt.NewJwtManager(&config.ServerConfig{}).CreateToken("owner-1", 0)
	assert.ErrorIs(t, err, jwt.ErrNoSecret)

	_, err = jwt.NewJwtManager(&config.ServerConfig{SecretKey: "s"}).DecodeToken("garbage")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
