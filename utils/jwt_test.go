package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("client-42", time.Hour)
	require.NoError(t, err)

	subject, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-42", subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("client-42", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ExtractIDFromToken("not-a-token")
	assert.Error(t, err)
}
