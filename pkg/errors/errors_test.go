package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation failed: Email - must be a valid email", NewValidationError("Email", "must be a valid email").Error())
	assert.Equal(t, "validation failed: bad input", NewValidationError("", "bad input").Error())
}

func TestNotFoundError_Error(t *testing.T) {
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, "user not found: id=7", NewNotFoundError("user", "user not found: id=7").Error())
}

func TestAlreadyExistsError_Error(t *testing.T) {
	assert.Equal(t, "user already exists", NewAlreadyExistsError("user", "").Error())
	assert.Equal(t, "email already exists", NewAlreadyExistsError("user", "email already exists").Error())
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewInternalError("failed to create user", cause)

	assert.Equal(t, "failed to create user: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal error", ErrInternal.Error())
}

func TestClassifiers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", NewAlreadyExistsError("user", "email already exists"))

	assert.True(t, IsAlreadyExists(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))

	assert.True(t, IsNotFound(fmt.Errorf("get: %w", ErrNotFound)))
	assert.True(t, IsValidation(ErrInvalidArgument))
}
