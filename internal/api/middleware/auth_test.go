package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/service"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	lookups int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.lookups++
	if u, ok := r.users[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) FindAll(context.Context) ([]domain.User, error)    { return nil, nil }
func (r *stubUserRepo) FindActive(context.Context) ([]domain.User, error) { return nil, nil }
func (r *stubUserRepo) FindByRole(context.Context, domain.Role) ([]domain.User, error) {
	return nil, nil
}
func (r *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }
func (r *stubUserRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (r *stubUserRepo) Update(context.Context, *domain.User) error             { return nil }
func (r *stubUserRepo) Delete(context.Context, string) error                   { return nil }

func runAuthenticate(t *testing.T, repo *stubUserRepo, codec *service.TokenCodec, path, authHeader string, publicPaths []string) (Principal, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var (
		principal Principal
		hasIt     bool
		reached   bool
	)
	next := func(c echo.Context) error {
		reached = true
		principal, hasIt = PrincipalFrom(c)
		return nil
	}

	mw := Authenticate(codec, repo, publicPaths, zerolog.Nop())
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !reached {
		t.Fatalf("next handler never reached")
	}
	return principal, hasIt
}

func enabledUser(username string, role domain.Role) *domain.User {
	return &domain.User{ID: "u1", Username: username, Role: role, Active: true, Enabled: true}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Hour)
	repo := newStubUserRepo(enabledUser("carol", domain.RoleSeller))
	token, err := codec.Issue(enabledUser("carol", domain.RoleSeller))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	p, ok := runAuthenticate(t, repo, codec, "/api/products", "Bearer "+token, nil)
	if !ok {
		t.Fatalf("expected principal")
	}
	if p.User.Username != "carol" || p.Role != domain.RoleSeller {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestAuthenticate_CaseInsensitiveScheme(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Hour)
	repo := newStubUserRepo(enabledUser("carol", domain.RoleSeller))
	token, _ := codec.Issue(enabledUser("carol", domain.RoleSeller))

	if _, ok := runAuthenticate(t, repo, codec, "/api/products", "bearer "+token, nil); !ok {
		t.Fatalf("lowercase scheme should be accepted")
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Hour)
	repo := newStubUserRepo()

	if _, ok := runAuthenticate(t, repo, codec, "/api/products", "", nil); ok {
		t.Fatalf("expected no principal without a token")
	}
}

func TestAuthenticate_BadToken(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Hour)
	repo := newStubUserRepo(enabledUser("carol", domain.RoleSeller))

	if _, ok := runAuthenticate(t, repo, codec, "/api/products", "Bearer not-a-token", nil); ok {
		t.Fatalf("expected no principal for a garbage token")
	}
}

// A token minted with a rotated-out secret is indistinguishable from a forged
// one: the request proceeds unauthenticated.
func TestAuthenticate_WrongSecret(t *testing.T) {
	old := service.NewTokenCodec("old-secret", time.Hour)
	token, _ := old.Issue(enabledUser("carol", domain.RoleSeller))

	codec := service.NewTokenCodec("new-secret", time.Hour)
	repo := newStubUserRepo(enabledUser("carol", domain.RoleSeller))

	if _, ok := runAuthenticate(t, repo, codec, "/api/products", "Bearer "+token, nil); ok {
		t.Fatalf("expected no principal for a token under a rotated secret")
	}
}

func TestAuthenticate_DisabledSubject(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Hour)
	user := enabledUser("carol", domain.RoleSeller)
	user.Enabled = false
	repo := newStubUserRepo(user)
	token, _ := codec.Issue(user)

	if _, ok := runAuthenticate(t, repo, codec, "/api/products", "Bearer "+token, nil); ok {
		t.Fatalf("expected no principal for a disabled subject")
	}
}

func TestAuthenticate_UnknownSubject(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Hour)
	repo := newStubUserRepo()
	token, _ := codec.Issue(enabledUser("ghost", domain.RoleSeller))

	if _, ok := runAuthenticate(t, repo, codec, "/api/products", "Bearer "+token, nil); ok {
		t.Fatalf("expected no principal for an unknown subject")
	}
}

func TestAuthenticate_PublicPathSkipsLookup(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Hour)
	repo := newStubUserRepo(enabledUser("carol", domain.RoleSeller))
	token, _ := codec.Issue(enabledUser("carol", domain.RoleSeller))

	_, ok := runAuthenticate(t, repo, codec, "/api/users/login", "Bearer "+token, []string{"/api/users/login"})
	if ok {
		t.Fatalf("public path should not authenticate")
	}
	if repo.lookups != 0 {
		t.Fatalf("public path hit the identity store %d times", repo.lookups)
	}
}
