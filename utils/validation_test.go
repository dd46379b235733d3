package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane@example.com"))
	assert.True(t, ValidateEmail("  padded@example.com  "))

	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@domain"))
	assert.False(t, ValidateEmail("two words@example.com"))
	assert.False(t, ValidateEmail(""))
}

func TestParseAmount(t *testing.T) {
	t.Run("json number", func(t *testing.T) {
		got, err := ParseAmount(float64(12.5))
		require.NoError(t, err)
		assert.Equal(t, 12.5, got)
	})

	t.Run("numeric string", func(t *testing.T) {
		got, err := ParseAmount(" 99.99 ")
		require.NoError(t, err)
		assert.Equal(t, 99.99, got)
	})

	t.Run("bad string", func(t *testing.T) {
		_, err := ParseAmount("ten")
		assert.Error(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := ParseAmount(nil)
		assert.Error(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ParseAmount(true)
		assert.Error(t, err)
	})
}
