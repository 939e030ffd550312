package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("passes domain errors through", func(t *testing.T) {
		err := NewConflict("slot taken", map[string]any{"skill": "x"})
		mapped := ToDomainError(err)
		assert.Equal(t, "CONFLICT", mapped.Code)
		assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
		assert.Equal(t, "x", mapped.Details["skill"])
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		mapped := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", mapped.Code)
		assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	})

	t.Run("maps fiber errors by status", func(t *testing.T) {
		mapped := ToDomainError(fiber.NewError(http.StatusForbidden, "insufficient role"))
		assert.Equal(t, "FORBIDDEN", mapped.Code)
		assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
		assert.Equal(t, "insufficient role", mapped.Message)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		mapped := ToDomainError(errors.New("boom"))
		assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
		require.ErrorContains(t, mapped, "boom")
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewInternalError(inner)
	assert.ErrorIs(t, err, inner)
}
