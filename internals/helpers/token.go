// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middlewares after token verification.
const (
	LocUserID    = "user_id"
	LocStudentID = "student_id"
	LocRawToken  = "raw_token"
)

// GetRawAccessToken returns the access token from:
// 1) cookie "access_token"
// 2) Locals("raw_token") set by the middleware
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// SetRawAccessToken stashes the verified token for downstream reuse.
func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

func uuidFromLocals(c *fiber.Ctx, key, loginMsg, invalidMsg string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, loginMsg)
	}
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, loginMsg)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, loginMsg)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, invalidMsg)
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, invalidMsg)
	}
}

// GetUserIDFromLocals reads the authenticated user id set by the JWT middleware.
// 401 when not logged in, 400 when the claim is malformed.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID, "User not logged in", "Invalid user id in token")
}

// GetStudentIDFromLocals reads the student id from a student-scoped token.
func GetStudentIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocStudentID, "Student not logged in", "Invalid student id in token")
}
