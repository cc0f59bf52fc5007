package handler

import (
	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PermissionHandler struct {
	permissionService service.PermissionService
}

func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// ListPagePermissions lists every column visibility row
// GET /api/v1/permissions/pages
func (h *PermissionHandler) ListPagePermissions(c *fiber.Ctx) error {
	rows, err := h.permissionService.ListPagePermissions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch page permissions"})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// ListCrudPermissions lists every action permission row
// GET /api/v1/permissions/crud
func (h *PermissionHandler) ListCrudPermissions(c *fiber.Ctx) error {
	rows, err := h.permissionService.ListCrudPermissions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch crud permissions"})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// SetPagePermission upserts one column visibility row
// PUT /api/v1/permissions/pages
func (h *PermissionHandler) SetPagePermission(c *fiber.Ctx) error {
	var row model.PagePermission
	if err := c.BodyParser(&row); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.permissionService.SetPagePermission(&row); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Page permission saved",
		"data":    row,
	})
}

// SetCrudPermission upserts one action permission row
// PUT /api/v1/permissions/crud
func (h *PermissionHandler) SetCrudPermission(c *fiber.Ctx) error {
	var row model.CrudPermission
	if err := c.BodyParser(&row); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.permissionService.SetCrudPermission(&row); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Crud permission saved",
		"data":    row,
	})
}

// MyVisibleColumns returns the caller's visible columns for a page.
// Only the purchase order page carries column level rules today.
// GET /api/v1/permissions/visible-columns?page=purchase_orders
func (h *PermissionHandler) MyVisibleColumns(c *fiber.Ctx) error {
	page := c.Query("page")
	if page == "" {
		return c.Status(400).JSON(fiber.Map{"error": "page query parameter is required"})
	}

	var all []string
	if page == model.PagePurchaseOrders {
		all = model.PurchaseOrderColumns
	}

	role := middleware.RoleFromContext(c)
	cols, err := h.permissionService.VisibleColumns(role, page, all)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve columns"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"page":    page,
		"columns": cols,
	}})
}
