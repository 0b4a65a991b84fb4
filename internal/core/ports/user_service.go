package ports

import (
	"context"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
)

// CreateUserInput carries a new identity. Role defaults to customer when
// empty; the string is parsed through domain.ParseRole.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
	Phone     string
	Role      string
}

// UpdateUserInput applies a partial identity update. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Role      *string
	Active    *bool
}

// UserService manages identities.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role string) ([]domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
