package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of roles an identity can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrValidation = errors.New("validation failed")
var ErrForbidden = errors.New("access forbidden")

// ParseRole converts an external role string (case-insensitive) into a Role.
// Unrecognized values fail with ErrValidation; this is the single place where
// the string form is interpreted.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleSeller):
		return RoleSeller, nil
	case string(RoleCustomer):
		return RoleCustomer, nil
	default:
		return "", ErrValidation
	}
}

// User models a registered identity in the system.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	Enabled      bool      `json:"enabled"`
	FirstLogin   bool      `json:"first_login"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanSellProducts reports whether this identity may own catalog products.
func (u *User) CanSellProducts() bool {
	return u.Role == RoleAdmin || u.Role == RoleSeller
}

// DisplayName is the human-readable form used in product seller summaries.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
