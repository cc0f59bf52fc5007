package handler

import (
	"errors"

	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BranchHandler struct {
	branchService service.BranchService
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// ListBranches lists all branches
// GET /api/v1/branches
func (h *BranchHandler) ListBranches(c *fiber.Ctx) error {
	branches, err := h.branchService.ListBranches()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch branches"})
	}
	return c.JSON(fiber.Map{"data": branches})
}

// MyBranches returns the branch codes the caller may operate on
// GET /api/v1/branches/mine
func (h *BranchHandler) MyBranches(c *fiber.Ctx) error {
	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"all":   scope.All,
		"codes": scope.Codes,
	}})
}

// CreateBranch creates a branch
// POST /api/v1/branches
func (h *BranchHandler) CreateBranch(c *fiber.Ctx) error {
	var req service.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := middleware.ActorFromContext(c)
	branch, err := h.branchService.CreateBranch(&req, actor.ID)
	if err != nil {
		if errors.Is(err, service.ErrBranchCodeExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Branch created successfully",
		"data":    branch,
	})
}

// UpdateBranch updates a branch by its code
// PUT /api/v1/branches/:code
func (h *BranchHandler) UpdateBranch(c *fiber.Ctx) error {
	code := c.Params("code")

	var req service.UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := middleware.ActorFromContext(c)
	branch, err := h.branchService.UpdateBranch(code, &req, actor.ID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Branch updated successfully",
		"data":    branch,
	})
}
