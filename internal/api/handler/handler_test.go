package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mercadolocal/catalog-system/internal/api/middleware"
	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

// newTestContext builds an Echo context with the request validator installed,
// the same way the router wires it.
func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubUserService struct {
	users map[string]*domain.User
	err   error
}

func newStubUserService(users ...*domain.User) *stubUserService {
	s := &stubUserService{users: make(map[string]*domain.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserService) Create(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u := &domain.User{
		ID:        "u-new",
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Username:  in.Username,
		Phone:     in.Phone,
		Role:      domain.Role(in.Role),
		Active:    true,
		Enabled:   true,
	}
	if in.Role == "" {
		u.Role = domain.RoleCustomer
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *stubUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) {
	return s.all(), s.err
}

func (s *stubUserService) ListActive(context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range s.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, s.err
}

func (s *stubUserService) ListByRole(_ context.Context, role string) ([]domain.User, error) {
	if _, err := domain.ParseRole(role); err != nil {
		return nil, err
	}
	var out []domain.User
	for _, u := range s.users {
		if string(u.Role) == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *stubUserService) Update(_ context.Context, id string, _ ports.UpdateUserInput) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *stubUserService) all() []domain.User {
	var out []domain.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

type stubCatalogService struct {
	product       *domain.Product
	products      []domain.Product
	err           error
	deleteFlipped bool

	lastActor    string
	lastID       string
	lastQuantity int
	lastCreate   ports.CreateProductInput
	lastUpdate   ports.UpdateProductInput
}

func (s *stubCatalogService) Create(_ context.Context, actor string, in ports.CreateProductInput) (*domain.Product, error) {
	s.lastActor, s.lastCreate = actor, in
	return s.product, s.err
}

func (s *stubCatalogService) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.lastID = id
	return s.product, s.err
}

func (s *stubCatalogService) ListActive(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogService) ListAvailable(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogService) ListBySeller(_ context.Context, sellerID string) ([]domain.Product, error) {
	s.lastID = sellerID
	return s.products, s.err
}

func (s *stubCatalogService) Update(_ context.Context, actor, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	s.lastActor, s.lastID, s.lastUpdate = actor, id, in
	return s.product, s.err
}

func (s *stubCatalogService) Delete(_ context.Context, actor, id string) (bool, error) {
	s.lastActor, s.lastID = actor, id
	return s.deleteFlipped, s.err
}

func (s *stubCatalogService) ReduceStock(_ context.Context, actor, id string, quantity int) (*domain.Product, error) {
	s.lastActor, s.lastID, s.lastQuantity = actor, id, quantity
	return s.product, s.err
}

func (s *stubCatalogService) AddStock(_ context.Context, actor, id string, quantity int) (*domain.Product, error) {
	s.lastActor, s.lastID, s.lastQuantity = actor, id, quantity
	return s.product, s.err
}

func isHTTPStatus(err error, code int) bool {
	he, ok := err.(*echo.HTTPError)
	return ok && he.Code == code
}

func isBadRequest(err error) bool {
	return isHTTPStatus(err, http.StatusBadRequest)
}

// authenticate attaches a principal under the same context key the
// authentication middleware uses.
func authenticate(c echo.Context, user *domain.User) {
	c.Set("principal", middleware.Principal{User: user, Role: user.Role})
}
