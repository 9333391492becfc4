package middleware

import (
	"errors"
	"strings"

	"loanapi/internal/core/domain"
	"loanapi/internal/pkg/jwt"
	"loanapi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalAccountID = "accountID"
	LocalRole      = "role"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Access token required")
		}
		accessToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Validate token
		claims, err := verifier.Verify(accessToken)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}

		// 3. Set account info in context
		c.Locals(LocalAccountID, accountID)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AccountantOnly allows only the Accountant role
func AccountantOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAccountant)
}

// UserOnly allows only the User role
func UserOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleUser)
}

// AccountID returns the authenticated account id
func AccountID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalAccountID).(uint)
	return id
}

// Role returns the authenticated account role
func Role(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals(LocalRole).(domain.Role)
	return role
}
