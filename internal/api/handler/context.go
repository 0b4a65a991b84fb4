package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadolocal/catalog-system/internal/api/middleware"
	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// currentUser extracts the authenticated principal's identity. Routes calling
// this sit behind an authorization guard, so a missing principal means the
// middleware chain was miswired; fail closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p.User, nil
}

// actorName identifies the principal for audit purposes; "anonymous" when
// the request is unauthenticated.
func actorName(c echo.Context) string {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.User == nil {
		return "anonymous"
	}
	return p.User.Username
}
