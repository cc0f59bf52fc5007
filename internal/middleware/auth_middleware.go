package middleware

import (
	"strings"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/internal/service"
	"go-backoffice-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by RequireAuth
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalRole     = "role"
)

// RequireAuth validates the JWT token, double-checks the session against
// the database and stores the validated identity in the request context.
// Every downstream permission and lock decision reads the role from here,
// never from anything the client sent directly.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		// The role stored in the DB wins over the token copy
		c.Locals(LocalUserID, user.ID.String())
		c.Locals(LocalUserName, user.FullName)
		c.Locals(LocalRole, string(user.Role))

		return c.Next()
	}
}

// RequireRoles is the route gate: the request passes only when the
// authenticated role is in the allow list.
func RequireRoles(allowed ...model.Role) fiber.Handler {
	allowSet := make(map[model.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowSet[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := RoleFromContext(c)
		if _, ok := allowSet[role]; !ok {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: role not allowed for this route"})
		}
		return c.Next()
	}
}

// RequirePage allows the request only when the role may open the page,
// per the permission store (deny by default).
func RequirePage(permissions service.PermissionService, page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := permissions.CanAccess(RoleFromContext(c), page)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve permissions"})
		}
		if !allowed {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: no access to page '" + page + "'"})
		}
		return c.Next()
	}
}

// RequireAction allows the request only when the role may perform the
// CRUD action on the page, per the crud_permissions table.
func RequireAction(permissions service.PermissionService, page string, action model.CrudAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := permissions.CanDo(RoleFromContext(c), page, action)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve permissions"})
		}
		if !allowed {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires '" + string(action) + "' on '" + page + "'"})
		}
		return c.Next()
	}
}

// RoleFromContext returns the validated role of the current request.
func RoleFromContext(c *fiber.Ctx) model.Role {
	role, _ := c.Locals(LocalRole).(string)
	return model.Role(role)
}

// ActorFromContext returns the current request's actor identity.
func ActorFromContext(c *fiber.Ctx) service.Actor {
	id, _ := c.Locals(LocalUserID).(string)
	name, _ := c.Locals(LocalUserName).(string)
	return service.Actor{ID: id, Name: name}
}
