package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"matchmakr-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := map[int]*apperror.AppError{
		http.StatusBadRequest:          apperror.BadRequest("bad"),
		http.StatusUnauthorized:        apperror.Unauthorized("who"),
		http.StatusForbidden:           apperror.Forbidden("no"),
		http.StatusNotFound:            apperror.NotFound("gone"),
		http.StatusConflict:            apperror.Conflict("dup"),
		http.StatusInternalServerError: apperror.Internal(errors.New("boom")),
	}
	for code, err := range cases {
		assert.Equal(t, code, err.Code)
		assert.Equal(t, code, apperror.CodeOf(err))
	}
}

func TestValidationKeepsFields(t *testing.T) {
	err := apperror.Validation("Invalid input", apperror.FieldError{Field: "status", Message: "must be one of the application statuses"})
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Len(t, err.Fields, 1)
	assert.Equal(t, "status", err.Fields[0].Field)
}

func TestCodeOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("apply: %w", apperror.Conflict("already applied"))
	assert.Equal(t, http.StatusConflict, apperror.CodeOf(wrapped))
	assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(errors.New("plain")))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("db down")
	err := apperror.Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal Server Error", err.Error())
}
