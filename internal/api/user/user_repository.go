package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aeschyllus/expensetracker-be/internal/store"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

const userColumns = "id, username, email, password_hash, created_at, updated_at"

// UserRepo defines the contract for user data persistence. All methods return
// classified store errors for uniqueness and existence violations.
type UserRepo interface {
	// CreateUser inserts a user with an already-hashed password.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*types.User, error)

	// GetUsers returns all users.
	GetUsers(ctx context.Context) ([]types.User, error)

	// GetUserByID returns a user or a store not-found error.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)

	// UpdateUser applies a partial update; nil fields are left unchanged. The
	// password field, when present, must already be hashed.
	UpdateUser(ctx context.Context, userID uuid.UUID, params UpdateUserFields) (*types.User, error)

	// DeleteUser hard-deletes a user.
	DeleteUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

// UpdateUserFields is the store-level shape of a partial user update: the
// plaintext password from types.UpdateUserParams has been replaced by a hash.
type UpdateUserFields struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

type PostgresUserRepo struct {
	logger *slog.Logger
	db     store.DB
}

func NewPostgresUserRepo(db store.DB, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		db:     db,
	}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*types.User, error) {
	var u types.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateUser"), slog.String("username", username))

	query := fmt.Sprintf(`
        INSERT INTO users (username, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING %s`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, username, email, passwordHash))
	if err != nil {
		l.WarnContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("creating user: %w", store.WrapError(err))
	}

	l.InfoContext(ctx, "User created", slog.String("userID", user.ID.String()))
	span.SetStatus(codes.Ok, "User created")
	return user, nil
}

func (r *PostgresUserRepo) GetUsers(ctx context.Context) ([]types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUsers", trace.WithAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at", userColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("listing users: %w", store.WrapError(err))
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	span.SetStatus(codes.Ok, "Users listed")
	return users, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		r.logger.WarnContext(ctx, "User lookup failed", slog.String("userID", userID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("fetching user: %w", store.WrapError(err))
	}

	span.SetStatus(codes.Ok, "User fetched")
	return user, nil
}

func (r *PostgresUserRepo) UpdateUser(ctx context.Context, userID uuid.UUID, params UpdateUserFields) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "UpdateUser", trace.WithAttributes(
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateUser"), slog.String("userID", userID.String()))

	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *params.Username)
		argID++
	}
	if params.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, *params.Email)
		argID++
	}
	if params.PasswordHash != nil {
		setClauses = append(setClauses, fmt.Sprintf("password_hash = $%d", argID))
		args = append(args, *params.PasswordHash)
		argID++
	}

	// A no-field update still has to confirm the target exists.
	if len(setClauses) == 0 {
		return r.GetUserByID(ctx, userID)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		l.WarnContext(ctx, "Failed to update user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("updating user: %w", store.WrapError(err))
	}

	l.InfoContext(ctx, "User updated")
	span.SetStatus(codes.Ok, "User updated")
	return user, nil
}

func (r *PostgresUserRepo) DeleteUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "DeleteUser", trace.WithAttributes(
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	query := fmt.Sprintf("DELETE FROM users WHERE id = $1 RETURNING %s", userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to delete user", slog.String("userID", userID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return nil, fmt.Errorf("deleting user: %w", store.WrapError(err))
	}

	r.logger.InfoContext(ctx, "User deleted", slog.String("userID", userID.String()))
	span.SetStatus(codes.Ok, "User deleted")
	return user, nil
}
