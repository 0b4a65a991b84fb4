package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

// AuthService implements the credential check behind the login endpoint.
type AuthService struct {
	repo   ports.UserRepository
	codec  ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Login matches the identifier against username first, then email, and
// verifies the password. Unknown identifier, inactive account, and wrong
// password all return the same ErrInvalidCredentials so the response never
// reveals which part of the credential was wrong.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.repo.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, err
	}

	// The response reports the pre-login value of first_login; the stored
	// flag is cleared so the hint fires exactly once.
	if user.FirstLogin {
		cleared := *user
		cleared.FirstLogin = false
		if err := s.repo.Update(ctx, &cleared); err != nil {
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("failed to clear first_login flag")
		}
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login succeeded")

	return &ports.LoginResult{Token: token, User: user}, nil
}
