package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
