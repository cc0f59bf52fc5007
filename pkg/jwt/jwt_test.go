package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureChangesSigningSecret(t *testing.T) {
	Configure("first-secret")
	token, err := GenerateToken(uuid.New(), "alice@example.com", "Alice", "admin", "HO", "v1")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)

	// Rotating the secret invalidates tokens signed under the old one
	Configure("second-secret")
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfigureIgnoresEmptySecret(t *testing.T) {
	Configure("keep-this-secret")
	token, err := GenerateToken(uuid.New(), "bob@example.com", "Bob", "staff", "", "v1")
	require.NoError(t, err)

	Configure("")

	_, err = ValidateToken(token)
	assert.NoError(t, err, "an empty secret must not clobber the configured one")
}
