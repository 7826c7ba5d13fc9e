package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func waitForNotification(t *testing.T, notifier *FakeNotifier, kind string) notifierCall {
	t.Helper()
	select {
	case call := <-notifier.Calls:
		assert.Equal(t, kind, call.Kind)
		return call
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s notification", kind)
		return notifierCall{}
	}
}

func TestRegister(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	t.Run("Should reject roles other than CANDIDATE or EMPLOYER", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, NewFakeNotifier())

		_, _, err := uc.Register(context.Background(), &domain.RegisterInput{
			Email:    "a@b.com",
			Password: "secret1",
			Role:     domain.RoleAdmin,
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should surface conflict on duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, NewFakeNotifier())

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(apperror.Conflict("User with this email already exists"))

		_, _, err := uc.Register(context.Background(), &domain.RegisterInput{
			Email:     "taken@example.com",
			Password:  "secret1",
			Role:      domain.RoleCandidate,
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
	})

	t.Run("Should hash the password, issue a valid token and send welcome email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		notifier := NewFakeNotifier()
		uc := usecase.NewAuthUsecase(mockRepo, tokens, notifier)

		var stored *domain.User
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(nil).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.User)
			})

		user, token, err := uc.Register(context.Background(), &domain.RegisterInput{
			Email:     "Ada@Example.COM",
			Password:  "secret1",
			Role:      domain.RoleCandidate,
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		assert.NoError(t, err)
		assert.NotNil(t, stored)

		// Email normalized, credential never stored in the clear
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEqual(t, "secret1", stored.PasswordHash)
		assert.True(t, auth.CheckPassword(stored.PasswordHash, "secret1"))

		claims, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.Subject)
		assert.Equal(t, domain.RoleCandidate, claims.Role)

		call := waitForNotification(t, notifier, "welcome")
		assert.Equal(t, "ada@example.com", call.To)
	})
}

func TestLogin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	hash, err := auth.HashPassword("correct-horse")
	assert.NoError(t, err)
	existing := &domain.User{
		ID:           "user1",
		Email:        "ada@example.com",
		PasswordHash: hash,
		Role:         domain.RoleCandidate,
	}

	t.Run("Should return the same generic error for an unknown email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, NewFakeNotifier())

		mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(context.Background(), "nobody@example.com", "whatever")
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should return the same generic error for a wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, NewFakeNotifier())

		mockRepo.On("GetByEmail", mock.Anything, "ada@example.com").
			Return(existing, nil)

		_, _, err := uc.Login(context.Background(), "ada@example.com", "wrong-horse")
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should issue a verifiable token on success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, NewFakeNotifier())

		mockRepo.On("GetByEmail", mock.Anything, "ada@example.com").
			Return(existing, nil)

		user, token, err := uc.Login(context.Background(), "ada@example.com", "correct-horse")
		assert.NoError(t, err)
		assert.Equal(t, "user1", user.ID)

		claims, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "user1", claims.Subject)
		assert.Equal(t, "ada@example.com", claims.Email)
	})
}

func TestGetCurrentUser(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	t.Run("Should map a missing user to NotFound", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, NewFakeNotifier())

		mockRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.GetCurrentUser(context.Background(), "ghost")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	})
}
