package handler

import (
	"errors"

	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LockHandler exposes row lock operations for the lockable entities.
// The :entity param is the table name ("purchase_orders" or
// "cash_requests").
type LockHandler struct {
	lockService service.LockService
}

func NewLockHandler(lockService service.LockService) *LockHandler {
	return &LockHandler{lockService: lockService}
}

// Acquire takes the row lock for the caller
// POST /api/v1/locks/:entity/:id
func (h *LockHandler) Acquire(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	actor := middleware.ActorFromContext(c)
	result, err := h.lockService.Acquire(c.Params("entity"), id, actor.ID, actor.Name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownLockEntity) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to acquire lock"})
	}

	if !result.Granted {
		return c.Status(423).JSON(fiber.Map{
			"error":       "Record is locked by another user",
			"holder_name": result.HolderName,
		})
	}

	return c.JSON(fiber.Map{"message": "Lock acquired"})
}

// Release drops the caller's lock
// DELETE /api/v1/locks/:entity/:id
func (h *LockHandler) Release(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	actor := middleware.ActorFromContext(c)
	if err := h.lockService.Release(c.Params("entity"), id, actor.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownLockEntity):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotLockHolder):
			return c.Status(423).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to release lock"})
		}
	}

	return c.JSON(fiber.Map{"message": "Lock released"})
}

// Check reports whether the row is currently locked. Stale locks are
// cleared on read.
// GET /api/v1/locks/:entity/:id
func (h *LockHandler) Check(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	status, err := h.lockService.Check(c.Params("entity"), id)
	if err != nil {
		if errors.Is(err, service.ErrUnknownLockEntity) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check lock"})
	}

	return c.JSON(fiber.Map{"data": status})
}

// ForceRelease clears any lock regardless of holder. The caller's role
// comes from the token, not the request body.
// DELETE /api/v1/locks/:entity/:id/force
func (h *LockHandler) ForceRelease(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	role := middleware.RoleFromContext(c)
	if err := h.lockService.ForceRelease(c.Params("entity"), id, role); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownLockEntity):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrForceNotAllowed):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to force release lock"})
		}
	}

	return c.JSON(fiber.Map{"message": "Lock force released"})
}
