package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
)

func TestError_KindSentinels(t *testing.T) {
	notFound := apperror.NotFound("place %s not found", "abc")
	wrapped := fmt.Errorf("loading place: %w", notFound)

	assert.True(t, errors.Is(wrapped, apperror.ErrNotFound))
	assert.False(t, errors.Is(wrapped, apperror.ErrConflict))
	assert.True(t, errors.Is(wrapped, notFound))
	assert.Equal(t, "place abc not found", notFound.Error())
}

func TestError_NamedSentinelsDoNotMatchEachOther(t *testing.T) {
	errA := apperror.Conflict("email already registered")
	errB := apperror.Conflict("duplicate record")

	assert.False(t, errors.Is(errA, errB))
	assert.True(t, errors.Is(errA, apperror.ErrConflict))
	assert.True(t, errors.Is(errB, apperror.ErrConflict))
}

func TestError_Wrap(t *testing.T) {
	cause := errors.New("unique constraint")
	err := apperror.Wrap(apperror.KindConflict, cause, "duplicate record")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "duplicate record: unique constraint", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperror.Validation("bad"), http.StatusBadRequest},
		{"not found", apperror.NotFound("missing"), http.StatusNotFound},
		{"conflict", apperror.Conflict("dup"), http.StatusConflict},
		{"unauthorized", apperror.Unauthorized("who"), http.StatusUnauthorized},
		{"forbidden", apperror.Forbidden("no"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("ctx: %w", apperror.Validation("bad")), http.StatusBadRequest},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad input", apperror.Message(apperror.Validation("bad input")))
	assert.Equal(t, "Internal server error", apperror.Message(errors.New("driver exploded")))
}
