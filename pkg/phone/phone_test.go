package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize("(212) 555-0123", "US")
	require.NoError(t, err)
	assert.Equal(t, "+12125550123", got)
}

func TestNormalize_DefaultRegion(t *testing.T) {
	got, err := Normalize("212-555-0123", "")
	require.NoError(t, err)
	assert.Equal(t, "+12125550123", got)
}

func TestNormalize_Invalid(t *testing.T) {
	_, err := Normalize("not a phone", "US")
	assert.Error(t, err)

	_, err = Normalize("", "US")
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("+12125550123", "US"))
	assert.False(t, Valid("12345", "US"))
}
