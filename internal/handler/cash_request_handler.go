package handler

import (
	"errors"

	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CashRequestHandler struct {
	cashService   service.CashRequestService
	branchService service.BranchService
}

func NewCashRequestHandler(cashService service.CashRequestService, branchService service.BranchService) *CashRequestHandler {
	return &CashRequestHandler{
		cashService:   cashService,
		branchService: branchService,
	}
}

// ListRequests lists cash requests inside the caller's branch scope
// GET /api/v1/cash-requests
func (h *CashRequestHandler) ListRequests(c *fiber.Ctx) error {
	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	requests, err := h.cashService.ListRequests(scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch cash requests"})
	}
	return c.JSON(fiber.Map{"data": requests})
}

// GetRequest returns one cash request
// GET /api/v1/cash-requests/:id
func (h *CashRequestHandler) GetRequest(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cash request ID"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	req, err := h.cashService.GetRequest(id, scope)
	if err != nil {
		if errors.Is(err, service.ErrBranchDenied) {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(404).JSON(fiber.Map{"error": "Cash request not found"})
	}
	return c.JSON(fiber.Map{"data": req})
}

// CreateRequest creates a cash request
// POST /api/v1/cash-requests
func (h *CashRequestHandler) CreateRequest(c *fiber.Ctx) error {
	var req service.CreateCashRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	created, err := h.cashService.CreateRequest(&req, scope, middleware.ActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrBranchDenied) {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Cash request created successfully",
		"data":    created,
	})
}

// UpdateStatus moves a cash request through its approval flow
// PUT /api/v1/cash-requests/:id/status
func (h *CashRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cash request ID"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	updated, err := h.cashService.UpdateStatus(id, model.CashRequestStatus(body.Status), scope, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordLocked):
			return c.Status(423).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrBranchDenied):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidStatusChange):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Cash request status updated",
		"data":    updated,
	})
}

// DeleteRequest soft deletes a cash request
// DELETE /api/v1/cash-requests/:id
func (h *CashRequestHandler) DeleteRequest(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cash request ID"})
	}

	scope, err := resolveScope(c, h.branchService)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve branch access"})
	}

	if err := h.cashService.DeleteRequest(id, scope, middleware.ActorFromContext(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrRecordLocked):
			return c.Status(423).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrBranchDenied):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Cash request deleted successfully"})
}
