package ports

import (
	"context"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// TokenSubject is the identity material embedded in a bearer token.
type TokenSubject struct {
	Username string
	Role     domain.Role
}

// TokenCodec issues and validates signed bearer tokens. Validate checks
// signature and expiry only; liveness of the identity is re-checked per
// request by the authentication middleware.
type TokenCodec interface {
	Issue(user *domain.User) (string, error)
	Validate(token string) (TokenSubject, error)
}

// LoginResult is what a successful credential check yields.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService verifies credentials and mints tokens.
type AuthService interface {
	// Login matches the identifier against username first, then email.
	// Unknown identifier, inactive account, and wrong password all fail with
	// the same domain.ErrInvalidCredentials.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
}
