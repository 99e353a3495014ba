package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(NewUnauthorized("x")))
	assert.Equal(t, http.StatusForbidden, GetHTTPStatus(NewForbidden("x")))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewResourceNotFound()))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestWrappedAppErrorIsDetected(t *testing.T) {
	err := fmt.Errorf("load booking: %w", NewNotFound("booking", "42"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))

	appErr, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, "booking not found", appErr.Message)
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
