package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"nullable,in=User,Admin"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService registers users and checks credentials. Passwords are stored
// and compared exactly as supplied.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user. A taken username is ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, &ValidationError{Fields: errs}
	}

	_, err := s.users.FindByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return models.User{}, ErrConflict
	case !errors.Is(err, repositories.ErrNotFound):
		return models.User{}, internal("find user", err)
	}

	u := models.User{Username: in.Username, Password: in.Password, Role: in.Role}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	err = s.users.Create(ctx, &u)
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return models.User{}, ErrConflict
	case err != nil:
		return models.User{}, internal("create user", err)
	}
	return u, nil
}

// Login returns the user whose credentials match. An unknown username and
// a wrong password are both ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, &ValidationError{Fields: errs}
	}

	u, err := s.users.FindByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return models.User{}, ErrUnauthorized
	case err != nil:
		return models.User{}, internal("find user", err)
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(in.Password)) != 1 {
		return models.User{}, ErrUnauthorized
	}
	return u, nil
}
