package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/folioworks/folio/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "folio"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("expired token")
	ErrMissingSubject = errors.New("token subject is required")
	ErrNoSecret       = errors.New("server secret key is not configured")
)

//go:generate mockery --name=Manager --dir=. --output=mocks/ --filename=jwt_manager_mock.go --case=underscore --with-expecter
type (
	Manager interface {
		// CreateToken signs a token for ownerID. A zero ttl never expires.
		CreateToken(ownerID string, ttl time.Duration) (string, error)
		// DecodeToken validates tokenString and returns its claims.
		DecodeToken(tokenString string) (*Claims, error)
	}
	manager struct {
		config *config.ServerConfig
		now    func() time.Time
	}
)

func NewJwtManager(config *config.ServerConfig) Manager {
	return &manager{
		config: config,
		now:    time.Now,
	}
}

type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) OwnerID() string {
	return c.Subject
}

func (m *manager) CreateToken(ownerID string, ttl time.Duration) (string, error) {
	if m.config.SecretKey == "" {
		return "", ErrNoSecret
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return "", ErrMissingSubject
	}
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  ownerID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (m *manager) DecodeToken(tokenString string) (*Claims, error) {
	if m.config.SecretKey == "" {
		return nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(m.config.SecretKey), nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
