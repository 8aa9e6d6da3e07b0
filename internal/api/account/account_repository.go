package account

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

var _ AccountRepo = (*PostgresAccountRepo)(nil)

const accountColumns = "id, name, amount, description, user_id, created_at, updated_at"

// AccountRepo defines the contract for account data persistence. Inserts with
// an unknown owner surface as classified foreign key errors.
type AccountRepo interface {
	CreateAccount(ctx context.Context, params types.CreateAccountParams) (*types.Account, error)

	// GetAccounts returns every account owned by the given user.
	GetAccounts(ctx context.Context, userID uuid.UUID) ([]types.Account, error)

	// GetAccountByID returns an account or a store not-found error.
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (*types.Account, error)

	// UpdateAccount applies a partial update; nil fields are left unchanged.
	UpdateAccount(ctx context.Context, accountID uuid.UUID, params types.UpdateAccountParams) (*types.Account, error)

	// DeleteAccount hard-deletes an account.
	DeleteAccount(ctx context.Context, accountID uuid.UUID) (*types.Account, error)
}

type PostgresAccountRepo struct {
	logger *slog.Logger
	db     store.DB
}

func NewPostgresAccountRepo(db store.DB, logger *slog.Logger) *PostgresAccountRepo {
	return &PostgresAccountRepo{
		logger: logger,
		db:     db,
	}
}

func scanAccount(row interface{ Scan(dest ...any) error }) (*types.Account, error) {
	var a types.Account
	err := row.Scan(&a.ID, &a.Name, &a.Amount, &a.Description, &a.UserID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAccountRepo) CreateAccount(ctx context.Context, params types.CreateAccountParams) (*types.Account, error) {
	ctx, span := otel.Tracer("AccountRepo").Start(ctx, "CreateAccount", trace.WithAttributes(
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "accounts"),
		attribute.String("db.user.id", params.UserID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateAccount"), slog.String("userID", params.UserID.String()))

	// A missing amount defaults to a zero balance.
	amount := 0.0
	if params.Amount != nil {
		amount = *params.Amount
	}

	query := fmt.Sprintf(`
        INSERT INTO accounts (name, amount, description, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING %s`, accountColumns)

	account, err := scanAccount(r.db.QueryRow(ctx, query, params.Name, amount, params.Description, params.UserID))
	if err != nil {
		l.WarnContext(ctx, "Failed to insert account", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("creating account: %w", store.WrapError(err))
	}

	l.InfoContext(ctx, "Account created", slog.String("accountID", account.ID.String()))
	span.SetStatus(codes.Ok, "Account created")
	return account, nil
}

func (r *PostgresAccountRepo) GetAccounts(ctx context.Context, userID uuid.UUID) ([]types.Account, error) {
	ctx, span := otel.Tracer("AccountRepo").Start(ctx, "GetAccounts", trace.WithAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "accounts"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	query := fmt.Sprintf("SELECT %s FROM accounts WHERE user_id = $1 ORDER BY created_at", accountColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("listing accounts: %w", store.WrapError(err))
	}
	defer rows.Close()

	var accounts []types.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	span.SetStatus(codes.Ok, "Accounts listed")
	return accounts, nil
}

func (r *PostgresAccountRepo) GetAccountByID(ctx context.Context, accountID uuid.UUID) (*types.Account, error) {
	ctx, span := otel.Tracer("AccountRepo").Start(ctx, "GetAccountByID", trace.WithAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "accounts"),
		attribute.String("db.account.id", accountID.String()),
	))
	defer span.End()

	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id = $1", accountColumns)

	account, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		r.logger.WarnContext(ctx, "Account lookup failed", slog.String("accountID", accountID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("fetching account: %w", store.WrapError(err))
	}

	span.SetStatus(codes.Ok, "Account fetched")
	return account, nil
}

func (r *PostgresAccountRepo) UpdateAccount(ctx context.Context, accountID uuid.UUID, params types.UpdateAccountParams) (*types.Account, error) {
	ctx, span := otel.Tracer("AccountRepo").Start(ctx, "UpdateAccount", trace.WithAttributes(
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "accounts"),
		attribute.String("db.account.id", accountID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateAccount"), slog.String("accountID", accountID.String()))

	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *params.Name)
		argID++
	}
	if params.Amount != nil {
		setClauses = append(setClauses, fmt.Sprintf("amount = $%d", argID))
		args = append(args, *params.Amount)
		argID++
	}
	if params.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *params.Description)
		argID++
	}

	// A no-field update still has to confirm the target exists.
	if len(setClauses) == 0 {
		return r.GetAccountByID(ctx, accountID)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, accountID)
	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, accountColumns)

	account, err := scanAccount(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		l.WarnContext(ctx, "Failed to update account", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("updating account: %w", store.WrapError(err))
	}

	l.InfoContext(ctx, "Account updated")
	span.SetStatus(codes.Ok, "Account updated")
	return account, nil
}

func (r *PostgresAccountRepo) DeleteAccount(ctx context.Context, accountID uuid.UUID) (*types.Account, error) {
	ctx, span := otel.Tracer("AccountRepo").Start(ctx, "DeleteAccount", trace.WithAttributes(
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "accounts"),
		attribute.String("db.account.id", accountID.String()),
	))
	defer span.End()

	query := fmt.Sprintf("DELETE FROM accounts WHERE id = $1 RETURNING %s", accountColumns)

	account, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to delete account", slog.String("accountID", accountID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return nil, fmt.Errorf("deleting account: %w", store.WrapError(err))
	}

	r.logger.InfoContext(ctx, "Account deleted", slog.String("accountID", accountID.String()))
	span.SetStatus(codes.Ok, "Account deleted")
	return account, nil
}
