package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/openedu/conductor-api/internal/errors"
)

var (
	ErrMissingToken = apierrors.New(apierrors.KindUnauthenticated, "Missing authorization token.")
	ErrInvalidToken = apierrors.New(apierrors.KindUnauthenticated, "Invalid authorization token.")
)

// Claims are the bearer token claims. UUID identifies the requesting user.
type Claims struct {
	UUID string `json:"uuid"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. An empty issuer disables issuer checks.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a token for the given user
func (m *TokenManager) Issue(uuid string) (string, error) {
	now := m.now()
	claims := Claims{
		UUID: uuid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims. Any failure is ErrInvalidToken.
func (m *TokenManager) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	token, err := jwt.NewParser(opts...).ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.UUID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
