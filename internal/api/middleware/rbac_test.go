package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

func runRequire(t *testing.T, op Operation, principal *Principal) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, *principal)
	}

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}

	if err := Require(op)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec.Code, reached
}

func principalWithRole(role domain.Role) *Principal {
	return &Principal{User: &domain.User{ID: "u1", Username: "test", Role: role}, Role: role}
}

func TestRequire_Policy(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		role    domain.Role
		allowed bool
	}{
		{"admin writes products", OpWriteProduct, domain.RoleAdmin, true},
		{"seller writes products", OpWriteProduct, domain.RoleSeller, true},
		{"customer cannot write products", OpWriteProduct, domain.RoleCustomer, false},
		{"admin deletes products", OpDeleteProduct, domain.RoleAdmin, true},
		{"seller cannot delete products", OpDeleteProduct, domain.RoleSeller, false},
		{"admin manages identities", OpManageIdentities, domain.RoleAdmin, true},
		{"seller cannot manage identities", OpManageIdentities, domain.RoleSeller, false},
		{"customer reads own profile", OpReadOwnProfile, domain.RoleCustomer, true},
		{"seller reads own profile", OpReadOwnProfile, domain.RoleSeller, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, reached := runRequire(t, tc.op, principalWithRole(tc.role))
			if tc.allowed && (!reached || code != http.StatusOK) {
				t.Fatalf("expected allow, got code=%d reached=%v", code, reached)
			}
			if !tc.allowed && (reached || code != http.StatusForbidden) {
				t.Fatalf("expected deny, got code=%d reached=%v", code, reached)
			}
		})
	}
}

func TestRequire_Unauthenticated(t *testing.T) {
	for _, op := range []Operation{OpWriteProduct, OpDeleteProduct, OpManageIdentities, OpReadOwnProfile} {
		code, reached := runRequire(t, op, nil)
		if reached || code != http.StatusForbidden {
			t.Fatalf("op %s: expected deny without principal, got code=%d reached=%v", op, code, reached)
		}
	}
}

func TestRequire_UnknownOperation(t *testing.T) {
	code, reached := runRequire(t, Operation("bogus"), principalWithRole(domain.RoleAdmin))
	if reached || code != http.StatusForbidden {
		t.Fatalf("unknown operations must deny, got code=%d reached=%v", code, reached)
	}
}
