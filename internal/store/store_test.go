package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	t.Run("NilPassesThrough", func(t *testing.T) {
		assert.NoError(t, WrapError(nil))
	})

	t.Run("NoRowsBecomesNotFound", func(t *testing.T) {
		err := WrapError(pgx.ErrNoRows)

		var storeErr *Error
		assert.ErrorAs(t, err, &storeErr)
		assert.Equal(t, NotFound, storeErr.Code)
		assert.Equal(t, "record not found", storeErr.Detail)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("WrappedNoRowsBecomesNotFound", func(t *testing.T) {
		err := WrapError(fmt.Errorf("fetching user: %w", pgx.ErrNoRows))

		var storeErr *Error
		assert.ErrorAs(t, err, &storeErr)
		assert.Equal(t, NotFound, storeErr.Code)
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			Detail:         "Key (username)=(bob) already exists.",
			ConstraintName: "users_username_key",
		}

		err := WrapError(pgErr)

		var storeErr *Error
		assert.ErrorAs(t, err, &storeErr)
		assert.Equal(t, UniqueViolation, storeErr.Code)
		assert.Equal(t, "Key (username)=(bob) already exists.", storeErr.Detail)
	})

	t.Run("UniqueViolationWithoutDetailUsesConstraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "users_email_key",
		}

		err := WrapError(pgErr)

		var storeErr *Error
		assert.ErrorAs(t, err, &storeErr)
		assert.Equal(t, `constraint "users_email_key" violated`, storeErr.Detail)
	})

	t.Run("ForeignKeyViolation", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:   "23503",
			Detail: `Key (user_id)=(42) is not present in table "users".`,
		}

		err := WrapError(pgErr)

		var storeErr *Error
		assert.ErrorAs(t, err, &storeErr)
		assert.Equal(t, ForeignKeyViolation, storeErr.Code)
	})

	t.Run("UnknownPgErrorPassesThrough", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "57014"} // query_canceled

		err := WrapError(pgErr)

		var storeErr *Error
		assert.False(t, errors.As(err, &storeErr))
		assert.Equal(t, pgErr, err)
	})

	t.Run("PlainErrorPassesThrough", func(t *testing.T) {
		plain := errors.New("connection refused")

		err := WrapError(plain)

		var storeErr *Error
		assert.False(t, errors.As(err, &storeErr))
		assert.Equal(t, plain, err)
	})
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(fmt.Errorf("outer: %w", WrapError(pgx.ErrNoRows)))
	assert.True(t, ok)
	assert.Equal(t, NotFound, code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(WrapError(pgx.ErrNoRows)))
	assert.False(t, IsNotFound(WrapError(&pgconn.PgError{Code: "23505"})))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestErrorString(t *testing.T) {
	withDetail := &Error{Code: UniqueViolation, Detail: "Key (email)=(a@b.c) already exists."}
	assert.Equal(t, "unique_violation: Key (email)=(a@b.c) already exists.", withDetail.Error())

	withoutDetail := &Error{Code: NotFound}
	assert.Equal(t, "not_found", withoutDetail.Error())
}
