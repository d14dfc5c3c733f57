package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, CheckPassword("hunter22", hash))
	require.False(t, CheckPassword("hunter23", hash))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestPasswordCost(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, 10, cost)
}
