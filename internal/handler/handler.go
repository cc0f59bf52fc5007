package handler

import (
	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// resolveScope builds the caller's branch scope from the authenticated
// request context. Admin-tier roles get an unrestricted scope.
func resolveScope(c *fiber.Ctx, branches service.BranchService) (service.BranchScope, error) {
	actor := middleware.ActorFromContext(c)
	role := middleware.RoleFromContext(c)

	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return service.BranchScope{}, err
	}
	return branches.AllowedBranches(userID, role)
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
