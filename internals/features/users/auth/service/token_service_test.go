package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, tok.Method)
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestCreateAccessTokenCarriesUserIDOnly(t *testing.T) {
	userID := uuid.New()

	token, err := CreateAccessToken(testSecret, userID)
	require.NoError(t, err)

	claims := parseClaims(t, token)
	require.Equal(t, userID.String(), claims["id"])
	require.NotContains(t, claims, "student_id")
	require.Less(t, claims["iat"].(float64), claims["exp"].(float64))
}

func TestCreateStudentAccessTokenCarriesStudentClaim(t *testing.T) {
	userID := uuid.New()
	studentID := uuid.New()

	token, err := CreateStudentAccessToken(testSecret, userID, studentID)
	require.NoError(t, err)

	claims := parseClaims(t, token)
	require.Equal(t, userID.String(), claims["id"])
	require.Equal(t, studentID.String(), claims["student_id"])
	require.Less(t, claims["iat"].(float64), claims["exp"].(float64))
}
