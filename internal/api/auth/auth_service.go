package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/aeschyllus/expensetracker-be/app/observability/metrics"
	"github.com/aeschyllus/expensetracker-be/internal/api"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the authentication flow: credential login and
// registration, both ending in an issued access token.
type AuthService interface {
	// Login authenticates a user by username and password and returns an
	// access token. An unknown username surfaces as a store not-found error; a
	// wrong password as an unauthenticated error. The two outcomes are
	// deliberately distinct (matching the historical behavior of this API),
	// which permits username probing; see DESIGN.md before changing it.
	Login(ctx context.Context, username, password string) (string, error)

	// Register validates input, creates the user and returns an access token
	// together with the public projection of the created user.
	Register(ctx context.Context, params types.CreateUserParams) (string, *types.PublicUser, error)
}

// AuthServiceImpl implements AuthService on top of the auth repository, the
// credential hasher and the token issuer.
type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	tokens *TokenIssuer
}

func NewAuthService(repo AuthRepo, tokens *TokenIssuer, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		tokens: tokens,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	l := s.logger.With(slog.String("method", "Login"), slog.String("username", username))

	start := time.Now()
	m := metrics.Get()

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		l.WarnContext(ctx, "Login failed: user lookup", slog.Any("error", err))
		m.LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "not_found")))
		return "", err
	}

	if !CheckPassword(password, user.PasswordHash) {
		l.WarnContext(ctx, "Login failed: password mismatch")
		m.LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unauthorized")))
		return "", fmt.Errorf("password verification failed: %w", api.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue access token", slog.Any("error", err))
		return "", fmt.Errorf("issuing access token: %w", err)
	}

	m.LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	m.LoginDurationSeconds.Record(ctx, time.Since(start).Seconds())
	l.InfoContext(ctx, "Login successful", slog.String("userID", user.ID.String()))
	return token, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, params types.CreateUserParams) (string, *types.PublicUser, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("username", params.Username))

	start := time.Now()
	m := metrics.Get()

	hashed, err := HashPassword(params.Password)
	if err != nil {
		l.ErrorContext(ctx, "Password hashing failed", slog.Any("error", err))
		return "", nil, err
	}

	user, err := s.repo.CreateUser(ctx, params.Username, params.Email, hashed)
	if err != nil {
		l.WarnContext(ctx, "Registration failed", slog.Any("error", err))
		m.RegisterRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue access token", slog.Any("error", err))
		return "", nil, fmt.Errorf("issuing access token: %w", err)
	}

	public := user.Public()
	m.RegisterRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	m.RegisterDurationSeconds.Record(ctx, time.Since(start).Seconds())
	l.InfoContext(ctx, "Registration successful", slog.String("userID", user.ID.String()))
	return token, &public, nil
}
