package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"logisticpro/internal/models"
	"logisticpro/internal/password"
	"logisticpro/internal/repository"
	"logisticpro/internal/token"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnavailable        = errors.New("store unavailable")
)

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthResult is what register and login hand back to the HTTP layer.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, plaintext string) (*AuthResult, error)
	Login(ctx context.Context, email, plaintext string) (*AuthResult, error)
	WhoAmI(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	repo      repository.UserRepository
	hasher    *password.Hasher
	tokens    *token.Manager
	dbTimeout time.Duration
	logger    *zap.Logger
}

func NewAuthService(repo repository.UserRepository, hasher *password.Hasher, tokens *token.Manager, dbTimeout time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		dbTimeout: dbTimeout,
		logger:    logger,
	}
}

// Register creates an account and logs it in. New registrations are always
// plain users; only an existing admin can create another admin through the
// user-management endpoints.
func (s *authService) Register(ctx context.Context, name, email, plaintext string) (*AuthResult, error) {
	var bad []string
	if strings.TrimSpace(name) == "" {
		bad = append(bad, "name")
	}
	if !emailPattern.MatchString(email) {
		bad = append(bad, "email")
	}
	if plaintext == "" {
		bad = append(bad, "password")
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}

	email = strings.ToLower(strings.TrimSpace(email))

	passwordHash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	if err := s.repo.CreateUser(dbCtx, user); err != nil {
		// Two concurrent registrations with the same email both pass any
		// pre-check; the unique index decides the loser.
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, s.storeError(err)
	}

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, plaintext string) (*AuthResult, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	user, err := s.repo.GetUserByEmail(dbCtx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same error as a bad password so callers can't probe
			// which emails are registered.
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, s.storeError(err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Best effort: a failed timestamp update must not fail the login.
	touchCtx, touchCancel := context.WithTimeout(ctx, s.dbTimeout)
	defer touchCancel()
	if err := s.repo.TouchLastLogin(touchCtx, user.ID); err != nil {
		s.logger.Warn("Failed to update last_login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return s.issue(user)
}

// WhoAmI resolves the account behind a verified token. The id comes from
// claims, never from client input; a missing row means the account was
// deleted after the token was issued.
func (s *authService) WhoAmI(ctx context.Context, userID int64) (*models.User, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	user, err := s.repo.GetUserByID(dbCtx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to get user by id", zap.Int64("user_id", userID), zap.Error(err))
		return nil, s.storeError(err)
	}
	return user, nil
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	tokenString, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: tokenString, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	return fmt.Errorf("store operation failed: %w", err)
}
