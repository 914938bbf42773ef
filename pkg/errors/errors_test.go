package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Clone(ErrForbidden, "not yours"))

	appErr := FromError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrForbidden.Code, appErr.Code)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Equal(t, "not yours", appErr.Message)
}

func TestFromErrorNormalisesUnknown(t *testing.T) {
	appErr := FromError(stdErrors.New("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(stdErrors.New("bad hex"), ErrInvalidID.Code, ErrInvalidID.Status, "invalid assignment id")

	assert.True(t, Is(err, ErrInvalidID))
	assert.False(t, Is(err, ErrNotFound))
	assert.False(t, Is(stdErrors.New("plain"), ErrInvalidID))
	assert.Equal(t, "invalid assignment id: bad hex", err.Error())
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrUnauthorized, "token expired")
	assert.Equal(t, "token expired", clone.Message)
	assert.Equal(t, "unauthorized access", ErrUnauthorized.Message)
}
