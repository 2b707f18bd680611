package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/domain"
)

const bcryptCost = 10

// AuthService handles registration, login and token issuance.
type AuthService struct {
	users  UserStore
	events EventSink
	tokens *TokenIssuer
}

// NewAuthService creates an AuthService over the given ports.
func NewAuthService(users UserStore, events EventSink, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		events: events,
		tokens: tokens,
	}
}

// RegisterParams carries a new account request.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginParams carries a credential check request.
type LoginParams struct {
	Email    string
	Password string
}

// AuthResult is a signed-in user with a fresh access token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates an account, signs a token for it and records an
// auth.registered event.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if err := ValidateRegister(params); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        params.Email,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return nil, err
	}

	appendEvent(ctx, s.events, domain.EventAuthRegistered, map[string]any{
		"userId": created.ID,
		"email":  created.Email,
	}, &created.ID)

	slog.Info("user registered",
		"user_id", created.ID)

	return &AuthResult{User: created, Token: token}, nil
}

// Login checks credentials and issues a token. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(params.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	appendEvent(ctx, s.events, domain.EventAuthLoggedIn, map[string]any{
		"userId": user.ID,
		"email":  user.Email,
	}, &user.ID)

	slog.Info("user logged in",
		"user_id", user.ID)

	return &AuthResult{User: user, Token: token}, nil
}
