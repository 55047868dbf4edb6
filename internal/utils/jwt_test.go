// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(userID, "tester", "manager", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "tester", claims.Username)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "gamevault", claims.Issuer)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateRefreshToken(userID, 1)
	require.NoError(t, err)

	subject, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)
}

func TestGenerateInvoiceNumber(t *testing.T) {
	invoice, err := GenerateInvoiceNumber()
	require.NoError(t, err)
	assert.Regexp(t, `^INV-[A-Za-z0-9]{10}$`, invoice)

	other, err := GenerateInvoiceNumber()
	require.NoError(t, err)
	assert.NotEqual(t, invoice, other)
}
