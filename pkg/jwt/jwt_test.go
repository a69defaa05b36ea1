package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateYParse_ConRole(t *testing.T) {
	token, err := Generate("secret", "admin", "admin", "grants-api", 5)
	require.NoError(t, err)

	sub, role, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.Equal(t, "admin", role)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	token, err := Generate("secret", "admin", "admin", "grants-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	token, err := Generate("secret", "admin", "admin", "grants-api", -1)
	require.NoError(t, err)

	_, _, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := Generate("", "admin", "admin", "grants-api", 5)
	assert.Error(t, err)
	_, _, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
