package auth_service

import (
	"context"
	"errors"
	"log/slog"

	"inkpost-service/internal/auth"
	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/metrics"
	"inkpost-service/internal/model"
	user_repository "inkpost-service/internal/repository/user"
)

const tokenType = "bearer"

type AuthService struct {
	users   user_repository.Repository
	tokens  *auth.TokenManager
	log     *logger.Logger
	metrics metrics.Provider
}

func NewAuthService(
	users user_repository.Repository,
	tokens *auth.TokenManager,
	log *logger.Logger,
	metrics metrics.Provider,
) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		log:     log,
		metrics: metrics,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		s.log.Debug("Rejected registration with empty credentials")
		s.metrics.IncrementAuthOperations("register", false)
		return nil, custom_errors.ErrInvalidInput
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash password", slog.String("error", err.Error()))
		s.metrics.IncrementAuthOperations("register", false)
		return nil, custom_errors.ErrExternalServiceError
	}

	user, err := s.users.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrUsernameExists) {
			s.log.Debug("Username already taken", slog.String("username", username))
			s.metrics.IncrementAuthOperations("register", false)
			return nil, custom_errors.ErrUsernameExists
		}
		s.log.Error("Failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()))
		s.metrics.IncrementAuthOperations("register", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.log.Info("Registered user", slog.Int64("user_id", user.ID))
	s.metrics.IncrementAuthOperations("register", true)
	return user, nil
}

// Login authenticates the credentials and mints an access token. Unknown
// usernames and wrong passwords both come back as ErrInvalidCredentials, and
// the unknown-username path still performs a hash comparison so the two
// failures take roughly the same time.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			auth.BurnPasswordCheck(password)
			s.log.Debug("Login for unknown username", slog.String("username", username))
			s.metrics.IncrementAuthOperations("login", false)
			return nil, custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to look up user",
			slog.String("username", username),
			slog.String("error", err.Error()))
		s.metrics.IncrementAuthOperations("login", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.log.Debug("Password mismatch", slog.Int64("user_id", user.ID))
		s.metrics.IncrementAuthOperations("login", false)
		return nil, custom_errors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("Failed to issue token",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		s.metrics.IncrementAuthOperations("login", false)
		return nil, custom_errors.ErrExternalServiceError
	}

	s.log.Info("User logged in", slog.Int64("user_id", user.ID))
	s.metrics.IncrementAuthOperations("login", true)
	return &model.Token{AccessToken: accessToken, TokenType: tokenType}, nil
}
