package handler

import (
	"errors"
	"fmt"
	"time"

	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseOrderHandler struct {
	orderService  service.PurchaseOrderService
	branchService service.BranchService
	exportService service.ExportService
}

func NewPurchaseOrderHandler(orderService service.PurchaseOrderService, branchService service.BranchService, exportService service.ExportService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		orderService:  orderService,
		branchService: branchService,
		exportService: exportService,
	}
}

// ListOrders lists purchase orders inside the caller's branch scope
// GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) ListOrders(c *fiber.Ctx) error {
	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	orders, err := h.orderService.ListOrders(scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch purchase orders"})
	}
	return c.JSON(fiber.Map{"data": orders})
}

// GetOrder returns one purchase order
// GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	po, err := h.orderService.GetOrder(id, scope)
	if err != nil {
		if errors.Is(err, service.ErrBranchDenied) {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(404).JSON(fiber.Map{"error": "Purchase order not found"})
	}
	return c.JSON(fiber.Map{"data": po})
}

// CreateOrder creates a purchase order
// POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	po, err := h.orderService.CreateOrder(&req, scope, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPONumberExists):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrBranchDenied):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Purchase order created successfully",
		"data":    po,
	})
}

// UpdateOrder updates a purchase order
// PUT /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var req service.UpdatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	po, err := h.orderService.UpdateOrder(id, &req, scope, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordLocked):
			return c.Status(423).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrBranchDenied):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Purchase order updated successfully",
		"data":    po,
	})
}

// DeleteOrder soft deletes a purchase order
// DELETE /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	if err := h.orderService.DeleteOrder(id, scope, middleware.ActorFromContext(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrRecordLocked):
			return c.Status(423).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrBranchDenied):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Purchase order deleted successfully"})
}

// ExportCSV streams the caller's visible purchase order columns as CSV
// GET /api/v1/purchase-orders/export
func (h *PurchaseOrderHandler) ExportCSV(c *fiber.Ctx) error {
	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	data, err := h.exportService.ExportPurchaseOrdersCSV(middleware.RoleFromContext(c), scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to export purchase orders"})
	}

	filename := fmt.Sprintf("purchase-orders-%s.csv", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
