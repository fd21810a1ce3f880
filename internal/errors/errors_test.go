package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	bare := New(CodeInternalError, "something broke")
	assert.Equal(t, "something broke", bare.Error())

	caused := DatabaseError("query failed", fmt.Errorf("connection refused"))
	assert.Equal(t, "query failed: connection refused", caused.Error())
}

func TestWrapPreservesCode(t *testing.T) {
	inner := ConfigInvalid("DATABASE_URL is required")
	wrapped := Wrap(inner, "configuration validation failed")

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, CodeConfigInvalid, appErr.Code)
	assert.True(t, stderrors.Is(wrapped, inner))
}

func TestWrapDefaultsToInternalCode(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("boom"), "stage failed")

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, CodeInternalError, appErr.Code)
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestDatabaseErrorUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("deadlock detected")
	err := DatabaseError("failed to upsert dashboard pointer", cause)

	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.True(t, stderrors.Is(err, cause))
}

func TestExternalServiceError(t *testing.T) {
	cause := fmt.Errorf("http 503: overloaded")
	err := ExternalServiceError("cohere", cause)

	assert.Equal(t, CodeExternalService, err.Code)
	assert.Equal(t, "cohere service error: http 503: overloaded", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}
