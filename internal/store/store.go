// Package store defines the contract between the repositories and the rest of
// the application: a narrow database interface satisfied by both pgxpool.Pool
// and pgxmock, and a closed set of structured error codes that repositories
// fold raw Postgres failures into. Nothing above the repository layer ever sees
// a pgconn error directly.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. Keeping it narrow lets
// tests substitute pgxmock.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ErrorCode classifies a store failure. The set is closed: anything the
// repositories cannot classify stays a plain error and is treated as internal
// by the API layer.
type ErrorCode string

const (
	UniqueViolation     ErrorCode = "unique_violation"
	ForeignKeyViolation ErrorCode = "foreign_key_violation"
	NotFound            ErrorCode = "not_found"
)

// Postgres SQLSTATE codes the repositories care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Error is a classified store failure.
type Error struct {
	Code   ErrorCode
	Detail string // short, user-safe fragment of the database diagnostic
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError folds a pgx-level error into a classified *Error. Unique and
// foreign key constraint violations and pgx.ErrNoRows become store codes;
// anything else is returned unchanged so callers surface it as internal.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &Error{Code: NotFound, Detail: "record not found", Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{Code: UniqueViolation, Detail: detailOf(pgErr), Err: err}
		case pgForeignKeyViolation:
			return &Error{Code: ForeignKeyViolation, Detail: detailOf(pgErr), Err: err}
		}
	}
	return err
}

// detailOf extracts the short diagnostic clause from a Postgres error. The
// Detail field (e.g. `Key (username)=(bob) already exists.`) is safe to show;
// the full message carries table and query internals, so it is never used.
func detailOf(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return pgErr.Detail
	}
	if pgErr.ConstraintName != "" {
		return fmt.Sprintf("constraint %q violated", pgErr.ConstraintName)
	}
	return "constraint violated"
}

// CodeOf returns the classified code for err, if it carries one.
func CodeOf(err error) (ErrorCode, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}

// IsNotFound reports whether err is a classified not-found store error.
func IsNotFound(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == NotFound
}
