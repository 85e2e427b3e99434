// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services take repository interfaces, never *sqlite.DB, so tests can hand
// them in-memory fakes. They return apperror values and leave status codes
// to the handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// compile-time check that *UserService can back the Basic Auth middleware
var _ auth.Authenticator = (*UserService)(nil)

// UserService handles account registration and credential checks.
//
// DEPENDENCIES (injected via NewUserService):
//   - users      repository.UserRepository → read/write user records
//   - passwords  *auth.PasswordService     → bcrypt hashing and comparison
//   - logger     *slog.Logger              → structured logging
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register validates a new account, hashes its password and stores it.
//
// Every violated rule is reported at once as an apperror.Validation. An email
// address that is already registered is reported the same way, so the client
// gets one uniform 400 shape for both.
func (s *UserService) Register(ctx context.Context, in model.UserInput) (*model.User, error) {
	if msgs := in.Validate(); len(msgs) > 0 {
		return nil, apperror.Validation(msgs)
	}

	hash, err := s.passwords.Hash(in.Password.Value)
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	user := &model.User{
		FirstName:    in.FirstName.Value,
		LastName:     in.LastName.Value,
		EmailAddress: in.EmailAddress.Value,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Validation([]string{model.MsgEmailInUse})
		}
		s.logger.Error("failed to create user",
			slog.String("emailAddress", user.EmailAddress),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("emailAddress", user.EmailAddress),
	)
	return user, nil
}

// GetUser returns the user with the given ID.
// Returns apperror.ErrNotFound if there is none.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching user %s: %w", id, err)
	}
	return user, nil
}

// Authenticate checks a Basic Auth credential pair.
//
// Both an unknown email address and a wrong password come back as
// apperror.ErrUnauthenticated. The AppError message names which one it was
// so the middleware can log it; clients never see it.
func (s *UserService) Authenticate(ctx context.Context, emailAddress, password string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, emailAddress)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthenticated("user not found for username: " + emailAddress)
		}
		return nil, fmt.Errorf("authenticating %s: %w", emailAddress, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.Unauthenticated("authentication failure for username: " + emailAddress)
		}
		return nil, fmt.Errorf("authenticating %s: %w", emailAddress, err)
	}

	return user, nil
}
