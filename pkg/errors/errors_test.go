package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageError_WithCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("failed to write blob").WithCause(cause)

	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeStorage, err.Type)
	assert.Equal(t, "failed to write blob", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.Equal(t, cause, err.Cause)
	assert.True(t, IsType(err, ErrorTypeStorage))
}

func TestGetAppError_UnwrapsChain(t *testing.T) {
	inner := NewNotFoundError("scene")
	wrapped := Wrap(inner, "loading snapshot")

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, IsNotFound(wrapped))
}
