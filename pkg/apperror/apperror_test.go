package apperror

import (
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("email: required"), http.StatusBadRequest},
		{"conflict", ErrEmailTaken, http.StatusConflict},
		{"wrapped with fmt", fmt.Errorf("register: %w", ErrInvalidCoupon), http.StatusConflict},
		{"page out of range", ErrPageOutOfRange, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWithDetailsKeepsIdentity(t *testing.T) {
	err := ErrNotFound.WithDetails("product 42")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrConflict))
	assert.Equal(t, "resource not found: product 42", err.Error())
	assert.Equal(t, "resource not found", err.Message())
}

func TestUpstreamCarriesStack(t *testing.T) {
	err := Upstream(pkgerrors.New("connection refused"))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "connection refused", appErr.Details())
	assert.NotEmpty(t, Stack(err))
}

func TestStackEmptyWithoutTrace(t *testing.T) {
	assert.Empty(t, Stack(ErrForbidden))
}
