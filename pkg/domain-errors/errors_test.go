package dErrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CodeInternal, "store failed")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store failed")
	assert.Contains(t, err.Error(), "boom")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestHasCode(t *testing.T) {
	t.Run("direct code", func(t *testing.T) {
		err := New(CodeQuotaExceeded, "donor over limit")
		assert.True(t, HasCode(err, CodeQuotaExceeded))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("wrapped chain", func(t *testing.T) {
		inner := New(CodeCapacityExceeded, "donor list full")
		outer := Wrap(inner, CodeInternal, "log donation")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeCapacityExceeded))
	})

	t.Run("uncoded error", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})

	t.Run("fmt wrapped", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeValidation, "amount must be positive"))
		assert.True(t, HasCode(err, CodeValidation))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "already registered")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeUnauthorized:        http.StatusUnauthorized,
		CodeValidation:          http.StatusBadRequest,
		CodeNotFound:            http.StatusNotFound,
		CodeConflict:            http.StatusConflict,
		CodeQuotaExceeded:       http.StatusUnprocessableEntity,
		CodeCapacityExceeded:    http.StatusUnprocessableEntity,
		CodeQueryLimitExceeded:  http.StatusBadRequest,
		CodeCampaignExpired:     http.StatusConflict,
		CodeInsufficientBalance: http.StatusUnprocessableEntity,
		CodeInternal:            http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
