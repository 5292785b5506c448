package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const accessTokenTTL = 24 * time.Hour

// CreateAccessToken signs an HS256 token carrying the user id under "id",
// the claim the auth middleware reads first.
func CreateAccessToken(secret string, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(accessTokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// CreateStudentAccessToken signs a student-scoped token. It carries the
// issuing user under "id" and the student under "student_id", which the
// auth middleware copies into locals for the student-facing reads.
func CreateStudentAccessToken(secret string, userID, studentID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":         userID.String(),
		"student_id": studentID.String(),
		"iat":        now.Unix(),
		"exp":        now.Add(accessTokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}
