package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aeschyllus/expensetracker-be/internal/store"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo defines the persistence contract the authentication flow needs:
// credential lookup and user creation. Everything else about users lives in
// the user package.
type AuthRepo interface {
	// GetUserByUsername returns the full user record including the password
	// hash. Returns a store not-found error when the username is unknown.
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)

	// CreateUser inserts a new user with an already-hashed password. Returns a
	// store unique-violation error when the username or email is taken.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*types.User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	db     store.DB
}

func NewPostgresAuthRepo(db store.DB, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresAuthRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	var user types.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
         FROM users WHERE username = $1`,
		username).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.logger.WarnContext(ctx, "User lookup failed", slog.String("username", username), slog.Any("error", err))
		return nil, fmt.Errorf("fetching user by username: %w", store.WrapError(err))
	}
	return &user, nil
}

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (*types.User, error) {
	var user types.User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
         VALUES ($1, $2, $3)
         RETURNING id, username, email, password_hash, created_at, updated_at`,
		username, email, passwordHash).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.logger.WarnContext(ctx, "User insert failed", slog.String("username", username), slog.Any("error", err))
		return nil, fmt.Errorf("creating user: %w", store.WrapError(err))
	}

	r.logger.InfoContext(ctx, "User created", slog.String("userID", user.ID.String()))
	return &user, nil
}
