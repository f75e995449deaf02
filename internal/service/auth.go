package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/repo"
)

const minPasswordLength = 6

type AuthService struct {
	users repo.UserRepository
}

func NewAuthService(users repo.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Register(ctx context.Context, creds model.Credentials) (model.User, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return model.User{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if len(creds.Password) < minPasswordLength {
		return model.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.Create(ctx, model.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repo.ErrorConflict) {
		return model.User{}, fmt.Errorf("%w: email already in use", ErrValidation)
	}
	return user, err
}

// Login verifies credentials. An unknown email surfaces as not-found, a
// wrong password as bad credentials; the transport maps them to 404 and 400.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return model.User{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return model.User{}, ErrBadCredentials
	}
	return user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.users.Get(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
