package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeValidation:       http.StatusBadRequest,
		ErrCodeBadRequest:       http.StatusBadRequest,
		ErrCodeUnauthorized:     http.StatusUnauthorized,
		ErrCodeForbidden:        http.StatusForbidden,
		ErrCodeNotFound:         http.StatusNotFound,
		ErrCodeMethodNotAllowed: http.StatusMethodNotAllowed,
		ErrCodeConflict:         http.StatusConflict,
		ErrCodeInvalidState:     http.StatusConflict,
		ErrCodeDatabaseError:    http.StatusInternalServerError,
		ErrCodeInternal:         http.StatusInternalServerError,
	}

	for code, status := range cases {
		assert.Equal(t, status, New(code, "x").HTTPStatus, string(code))
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Database(cause, "не удалось сохранить")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeDatabaseError, CodeOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPredicates_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("usecase: %w", ErrJobNotOpen)

	assert.True(t, IsInvalidState(err))
	assert.False(t, IsConflict(err))
	assert.True(t, errors.Is(err, ErrJobNotOpen))
	assert.True(t, IsNotFound(ErrOrderNotFound))
	assert.True(t, IsForbidden(ErrNotYourOrder))
	assert.True(t, IsConflict(ErrDuplicateProposal))
	assert.True(t, IsValidation(Validation("пусто")))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
}
