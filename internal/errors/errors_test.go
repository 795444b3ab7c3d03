package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

func TestWrap(t *testing.T) {
	t.Run("Nil error", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "ignored"))
	})

	t.Run("Plain error gets code", func(t *testing.T) {
		base := stderrors.New("connection reset")
		err := errors.Wrap(base, errors.CodePlatformAPIError, "reading metadata")
		require.NotNil(t, err)
		assert.Equal(t, errors.CodePlatformAPIError, err.Code)
		assert.ErrorIs(t, err, base)
		assert.Equal(t, "[PLATFORM_API_ERROR] reading metadata: connection reset", err.Error())
	})

	t.Run("Existing AppError keeps inner code", func(t *testing.T) {
		inner := errors.New(errors.CodePlatformAuthError, "session expired")
		err := errors.Wrap(fmt.Errorf("fetch: %w", inner), errors.CodePlatformAPIError, "outer")
		assert.Equal(t, errors.CodePlatformAuthError, err.Code)
		assert.Same(t, inner, err)
	})
}

func TestWrapUserFacing(t *testing.T) {
	inner := errors.New(errors.CodeSessionError, "sf exited with status 1")
	err := errors.WrapUserFacing(inner, errors.CodeSessionError, "no CLI session for alias \"dev\"", "Run 'sf org login web -a dev' first.")

	assert.True(t, err.IsUserFacing)
	assert.Equal(t, inner.StackTrace, err.StackTrace)
	assert.Contains(t, err.InternalDetails, "sf exited with status 1")
	assert.ErrorIs(t, err, inner)
}

func TestGetUserFacingMessage(t *testing.T) {
	t.Run("Finds nested user-facing error", func(t *testing.T) {
		uf := errors.NewUserFacing(errors.CodeConfigValidation, "object is required", "Set 'object' in the config file.")
		wrapped := fmt.Errorf("bootstrap: %w", uf)

		msg, suggestion, ok := errors.GetUserFacingMessage(wrapped)
		assert.True(t, ok)
		assert.Equal(t, "object is required", msg)
		assert.Equal(t, "Set 'object' in the config file.", suggestion)
	})

	t.Run("Falls back to generic message", func(t *testing.T) {
		msg, _, ok := errors.GetUserFacingMessage(errors.New(errors.CodeInternal, "boom"))
		assert.False(t, ok)
		assert.Equal(t, "An unexpected error occurred.", msg)
	})
}

func TestCodeHelpers(t *testing.T) {
	err := errors.Wrap(stderrors.New("x"), errors.CodeResourceNotFound, "missing")
	assert.True(t, errors.Is(err, errors.CodeResourceNotFound))
	assert.False(t, errors.Is(err, errors.CodeInternal))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))

	assert.True(t, errors.CodePlatformAuthError.IsTransport())
	assert.True(t, errors.CodeSnapshotParseError.IsTransport())
	assert.False(t, errors.CodeConfigValidation.IsTransport())
}
