package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.nextID++
	copy := cloneUser(u)
	if copy.ID == "" {
		copy.ID = "u" + strconv.Itoa(r.nextID)
	}
	r.users[copy.ID] = copy
	return cloneUser(copy)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindActive(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, role domain.Role) *domain.User {
	t.Helper()
	return repo.add(&domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hashPassword(t, password),
		Role:         role,
		Active:       true,
		Enabled:      true,
		FirstLogin:   true,
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "carol", "s3cret", domain.RoleSeller)
	svc := NewAuthService(repo, NewTokenCodec("secret", time.Hour), zerolog.Nop())

	result, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if !result.User.FirstLogin {
		t.Fatalf("expected first_login true on the first login response")
	}

	subject, err := NewTokenCodec("secret", time.Hour).Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if subject.Username != "carol" || subject.Role != domain.RoleSeller {
		t.Fatalf("unexpected subject: %+v", subject)
	}
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave", "goodpass", domain.RoleCustomer)
	svc := NewAuthService(repo, NewTokenCodec("secret", time.Hour), zerolog.Nop())

	result, err := svc.Login(context.Background(), "dave@example.com", "goodpass")
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if result.User.Username != "dave" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

// All three failure causes must be externally indistinguishable.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "erin", "goodpass", domain.RoleCustomer)
	inactive := seedUser(t, repo, "frank", "goodpass", domain.RoleCustomer)
	inactive.Active = false
	repo.users[inactive.ID].Active = false

	svc := NewAuthService(repo, NewTokenCodec("secret", time.Hour), zerolog.Nop())

	cases := []struct {
		name       string
		identifier string
		password   string
	}{
		{"wrong password", "erin", "badpass"},
		{"unknown user", "ghost", "goodpass"},
		{"inactive account", "frank", "goodpass"},
	}
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.identifier, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
		if err.Error() != domain.ErrInvalidCredentials.Error() {
			t.Fatalf("%s: failure message differs: %q", tc.name, err.Error())
		}
	}
}

func TestAuthService_Login_ClearsFirstLoginFlag(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "gina", "pass123", domain.RoleAdmin)
	svc := NewAuthService(repo, NewTokenCodec("secret", time.Hour), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "gina", "pass123"); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if repo.users[seeded.ID].FirstLogin {
		t.Fatalf("first_login not cleared in store")
	}

	result, err := svc.Login(context.Background(), "gina", "pass123")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if result.User.FirstLogin {
		t.Fatalf("expected first_login false on second login")
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), NewTokenCodec("secret", time.Hour), zerolog.Nop())
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
