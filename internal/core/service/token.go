package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

// tokenClaims is the JWT payload: standard claims plus the role claim.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates HS256 bearer tokens. Rotating the secret
// invalidates every outstanding token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the subject's username, role, and expiry.
func (t *TokenCodec) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(t.secret)
}

// Validate verifies signature and expiry and extracts the embedded subject.
// It does not consult the identity store; a deactivated user is caught by the
// authentication middleware on its live reload.
func (t *TokenCodec) Validate(token string) (ports.TokenSubject, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tkn *jwt.Token) (interface{}, error) {
		if tkn.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return ports.TokenSubject{}, fmt.Errorf("validate token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return ports.TokenSubject{}, jwt.ErrTokenInvalidClaims
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return ports.TokenSubject{}, jwt.ErrTokenInvalidClaims
	}

	return ports.TokenSubject{Username: claims.Subject, Role: role}, nil
}
