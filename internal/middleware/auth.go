package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// tokenKey is the fiber locals key holding the caller's bearer token.
const tokenKey = "bearer_token"

// RequireAuth extracts the bearer token from the Authorization header
// and stores it for handlers to forward upstream. Token lifecycle
// (issuing, refresh) belongs to the auth provider, not this service;
// we only pass the credential through.
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required")
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be a bearer token")
		}

		c.Locals(tokenKey, strings.TrimSpace(token))
		return c.Next()
	}
}

// Token returns the bearer token extracted by RequireAuth. Empty when
// the route is not behind RequireAuth.
func Token(c fiber.Ctx) string {
	if t, ok := c.Locals(tokenKey).(string); ok {
		return t
	}
	return ""
}
