package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "title"})

	converted := ToDomainError(original)
	assert.Equal(t, "VALIDATION_FAILED", converted.Code)
	assert.Equal(t, http.StatusBadRequest, converted.HTTPStatus)
	assert.Equal(t, "title", converted.Details["field"])
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading listing: %w", NewForbidden("nope"))

	converted := ToDomainError(wrapped)
	assert.Equal(t, "FORBIDDEN", converted.Code)
	assert.Equal(t, http.StatusForbidden, converted.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	converted := ToDomainError(fmt.Errorf("query: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorOpaque(t *testing.T) {
	cause := errors.New("connection refused")

	converted := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	// The cause stays attached for logs but out of the message.
	assert.Equal(t, "internal server error", converted.Message)
	assert.True(t, errors.Is(converted, cause))
}

func TestToDomainErrorNil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("listing", nil)
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "listing not found", domainErr.Message)
}
