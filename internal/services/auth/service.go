package auth

import (
	"context"
	"errors"

	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/services/token"
	"github.com/mcoot/playerhub-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already registered")
)

// Service handles account signup and credential authentication
type Service struct {
	storage storage.Storage
	tokens  *token.Service
	hasher  PasswordHasher
}

// New creates a new auth Service
func New(storage storage.Storage, tokens *token.Service, hasher PasswordHasher) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
		hasher:  hasher,
	}
}

// Signup registers a new user account with a hashed password
func (s *Service) Signup(ctx context.Context, email, username, password string) (*model.User, error) {
	// Check if username exists
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	// Hash password
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.CreateUser(ctx, &model.User{
		Email:          email,
		Username:       username,
		HashedPassword: digest,
		IsActive:       true,
	})
	if err != nil {
		// The store enforces uniqueness as the backstop for concurrent signups
		if errors.Is(err, model.ErrUserExists) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token for the user.
// Unknown usernames and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Username)
}

// Authenticate resolves a bearer token to an active user.
// Bad tokens, unknown subjects, and deactivated accounts all fail with
// token.ErrInvalidToken so callers leak nothing about which check failed.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	subject, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, token.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, token.ErrInvalidToken
	}

	return user, nil
}
