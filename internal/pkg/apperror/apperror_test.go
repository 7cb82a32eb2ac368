package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpage/announcements-backend/internal/pkg/apperror"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, apperror.Unauthorized("no").Code)
	assert.Equal(t, http.StatusBadRequest, apperror.InvalidArgument("bad").Code)
	assert.Equal(t, http.StatusNotFound, apperror.NotFound("gone").Code)
	assert.Equal(t, http.StatusInternalServerError, apperror.Internal(nil, "boom").Code)
}

func TestErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.Internal(cause, "internal server error")

	assert.Equal(t, "internal server error", err.Error())
	assert.ErrorIs(t, err, cause)

	var appErr *apperror.AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}
