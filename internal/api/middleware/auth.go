package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

// principalKey is the request-context key the authenticated principal is
// stored under. The value is request-scoped and discarded with the request.
const principalKey = "principal"

// Principal is the immutable authenticated identity attached to a request
// after successful token validation.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// PrincipalFrom extracts the authenticated principal from the request
// context. The second return is false for unauthenticated requests.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

// Authenticate turns a bearer token into an authenticated principal. It is
// strictly best-effort and never aborts the request: a missing, malformed,
// expired, or forged token, or any failure loading the identity, leaves the
// request unauthenticated and lets the authorization layer decide.
// Requests under a configured public path prefix skip the attempt entirely.
//
// The token's subject is reloaded from the store on every request, so
// deactivating a user invalidates outstanding tokens without a revocation
// list: a token for a no-longer-enabled identity yields no principal.
func Authenticate(codec ports.TokenCodec, users ports.UserRepository, publicPaths []string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range publicPaths {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			subject, err := codec.Validate(token)
			if err != nil {
				// Never log the token itself.
				log.Debug().Str("path", path).Msg("bearer token rejected")
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), subject.Username)
			if err != nil {
				log.Warn().Err(err).Str("username", subject.Username).Msg("failed to load token subject")
				return next(c)
			}
			if !user.Enabled {
				log.Debug().Str("username", subject.Username).Msg("token subject no longer enabled")
				return next(c)
			}

			c.Set(principalKey, Principal{User: user, Role: user.Role})
			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. A missing or
// malformed header is not an error, just an unauthenticated request.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
