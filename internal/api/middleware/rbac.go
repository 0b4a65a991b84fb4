package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// Operation names an authorization category from the policy table. Public
// operations (login, product reads) are simply not guarded by Require.
type Operation string

const (
	OpWriteProduct     Operation = "product:write"
	OpDeleteProduct    Operation = "product:delete"
	OpManageIdentities Operation = "identity:manage"
	OpReadOwnProfile   Operation = "profile:read"
)

// policy is the static table mapping each guarded operation to the roles
// permitted to perform it. A nil role set means any authenticated principal.
var policy = map[Operation][]domain.Role{
	OpWriteProduct:     {domain.RoleAdmin, domain.RoleSeller},
	OpDeleteProduct:    {domain.RoleAdmin},
	OpManageIdentities: {domain.RoleAdmin},
	OpReadOwnProfile:   nil,
}

// Require enforces the policy table for one operation: deny unless the
// request carries a principal whose role is in the operation's role set.
// Unauthenticated requests are always denied here; reaching a guarded route
// without a principal means the token was absent or rejected upstream.
func Require(op Operation) echo.MiddlewareFunc {
	roles, known := policy[op]
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !known {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			p, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			if roles != nil {
				if _, member := allowed[p.Role]; !member {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
				}
			}
			return next(c)
		}
	}
}
