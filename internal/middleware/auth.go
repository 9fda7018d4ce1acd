package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/auth"
	"github.com/pmtrack/backend/internal/config"
	"github.com/pmtrack/backend/internal/rbac"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxUserRole, claims.Role)

		return c.Next()
	}
}

// GetUserID returns the authenticated actor. Every workflow transition
// receives its actor from here; there is no implicit system actor.
func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxUserRole).(string)
	return role
}

// ApproverMiddleware restricts approval and closure decisions to roles
// that may decide gates.
func ApproverMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rbac.CanApprove(GetUserRole(c)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "approver role required"})
		}
		return c.Next()
	}
}

// ProjectManagerMiddleware restricts project creation and deletion.
func ProjectManagerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rbac.CanManageProjects(GetUserRole(c)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "manager role required"})
		}
		return c.Next()
	}
}
