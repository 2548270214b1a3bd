package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches own code", func(t *testing.T) {
		err := New(CodeNotFound, "decision missing")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeValidation, "amount must be positive"))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("untyped errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUnavailable, "audit sink unavailable", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.Equal(t, "audit sink unavailable", MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}
