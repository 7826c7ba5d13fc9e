package usecase

import (
	"context"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/auth"

	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
	notifier domain.Notifier
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager, notifier domain.Notifier) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		notifier: notifier,
	}
}

// Register creates a user with a one-way hashed credential and issues a token.
func (uc *authUsecase) Register(ctx context.Context, input *domain.RegisterInput) (*domain.User, string, error) {
	if input.Role != domain.RoleCandidate && input.Role != domain.RoleEmployer {
		return nil, "", apperror.BadRequest("Role must be CANDIDATE or EMPLOYER")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  toPtr(input.PhoneNumber),
		Location:     toPtr(input.Location),
		Bio:          toPtr(input.Bio),
		CompanyName:  toPtr(input.CompanyName),
		Website:      toPtr(input.Website),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Repository maps the email unique violation to Conflict
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	email, name := user.Email, user.FirstName
	notifyAsync("welcome", func() error {
		return uc.notifier.SendWelcome(email, name)
	})

	return user, token, nil
}

// Login verifies credentials and issues a token. The same generic error is
// returned whether the email is unknown or the password is wrong.
func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", apperror.Unauthorized("Invalid credentials")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperror.Unauthorized("Invalid credentials")
	}

	token, err := uc.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
