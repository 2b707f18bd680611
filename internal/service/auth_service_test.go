package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/domain"
)

func newTestAuthService() (*AuthService, *mockUserStore, *mockEventSink) {
	users := &mockUserStore{}
	events := &mockEventSink{}
	tokens := NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(users, events, tokens), users, events
}

func TestRegister(t *testing.T) {
	svc, users, events := newTestAuthService()
	ctx := context.Background()

	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		// the stored hash must verify against the original password
		return u.Email == "dev@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")) == nil
	})).Return(&domain.User{
		ID:    testCreatorID,
		Email: "dev@example.com",
	}, nil)
	events.On("Append", ctx, mock.MatchedBy(func(e *domain.EventLogEntry) bool {
		return e.EventType == domain.EventAuthRegistered &&
			e.Payload["userId"] == testCreatorID &&
			e.Payload["email"] == "dev@example.com"
	})).Return(nil)

	result, err := svc.Register(ctx, RegisterParams{
		Email:     "dev@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Dev",
		LastName:  "One",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, testCreatorID, result.User.ID)

	users.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, events := newTestAuthService()
	ctx := context.Background()

	users.On("Create", ctx, mock.Anything).Return(nil, domain.ErrEmailTaken)

	_, err := svc.Register(ctx, RegisterParams{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "bad", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(ctx, RegisterParams{Email: "dev@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	svc, users, events := newTestAuthService()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByEmail", ctx, "dev@example.com").Return(&domain.User{
		ID:           testCreatorID,
		Email:        "dev@example.com",
		PasswordHash: string(hash),
	}, nil)
	events.On("Append", ctx, mock.MatchedBy(func(e *domain.EventLogEntry) bool {
		return e.EventType == domain.EventAuthLoggedIn && e.Payload["userId"] == testCreatorID
	})).Return(nil)

	result, err := svc.Login(ctx, LoginParams{Email: "dev@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	userID, err := svc.tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, testCreatorID, userID)

	events.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, events := newTestAuthService()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByEmail", ctx, "dev@example.com").Return(&domain.User{
		ID:           testCreatorID,
		Email:        "dev@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err = svc.Login(ctx, LoginParams{Email: "dev@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

	_, err := svc.Login(ctx, LoginParams{Email: "ghost@example.com", Password: "whatever"})
	// unknown email and wrong password look the same to the caller
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
