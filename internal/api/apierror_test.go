package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/aeschyllus/expensetracker-be/internal/store"
)

func TestTranslateError(t *testing.T) {
	t.Run("UniqueViolationIsConflict", func(t *testing.T) {
		err := fmt.Errorf("creating user: %w", store.WrapError(&pgconn.PgError{
			Code:   "23505",
			Detail: "Key (username)=(bob) already exists.",
		}))

		apiErr := TranslateError(err)

		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		assert.Equal(t, "[unique_violation]: Key (username)=(bob) already exists.", apiErr.Message)
	})

	t.Run("ForeignKeyViolationIsBadRequest", func(t *testing.T) {
		err := store.WrapError(&pgconn.PgError{
			Code:   "23503",
			Detail: `Key (user_id)=(42) is not present in table "users".`,
		})

		apiErr := TranslateError(err)

		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, `[foreign_key_violation]: Key (user_id)=(42) is not present in table "users".`, apiErr.Message)
	})

	t.Run("NoRowsIsNotFound", func(t *testing.T) {
		err := fmt.Errorf("fetching account: %w", store.WrapError(pgx.ErrNoRows))

		apiErr := TranslateError(err)

		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "[not_found]: record not found", apiErr.Message)
	})

	t.Run("UnauthenticatedIs401", func(t *testing.T) {
		err := fmt.Errorf("password verification failed: %w", ErrUnauthenticated)

		apiErr := TranslateError(err)

		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
	})

	t.Run("ExistingAPIErrorPassesThrough", func(t *testing.T) {
		original := BadRequest("email address is not valid")

		apiErr := TranslateError(fmt.Errorf("validation: %w", original))

		assert.Same(t, original, apiErr)
	})

	t.Run("UnknownErrorIsGeneric500", func(t *testing.T) {
		err := errors.New("pq: connection reset by peer")

		apiErr := TranslateError(err)

		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "Internal server error", apiErr.Message)
		// The raw cause stays wrapped for logging but never in the message.
		assert.ErrorIs(t, apiErr, err)
	})

	t.Run("UnclassifiedPgErrorIsGeneric500", func(t *testing.T) {
		err := store.WrapError(&pgconn.PgError{Code: "53300", Message: "too many connections"})

		apiErr := TranslateError(err)

		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "Internal server error", apiErr.Message)
		assert.NotContains(t, apiErr.Message, "too many connections")
	})
}

func TestErrorConstructors(t *testing.T) {
	bad := BadRequest("name must not be empty")
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.ErrorIs(t, bad, ErrBadRequest)

	unauth := Unauthorized("Invalid credentials")
	assert.Equal(t, http.StatusUnauthorized, unauth.StatusCode)
	assert.ErrorIs(t, unauth, ErrUnauthenticated)
}
