package handler

import (
	"errors"

	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListBulkPayments lists all bulk payment batches
// GET /api/v1/payments/bulk
func (h *PaymentHandler) ListBulkPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.ListBulkPayments()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch bulk payments"})
	}
	return c.JSON(fiber.Map{"data": payments})
}

// GetBulkPayment returns one batch with its member orders
// GET /api/v1/payments/bulk/:reference
func (h *PaymentHandler) GetBulkPayment(c *fiber.Ctx) error {
	bulk, orders, err := h.paymentService.GetBulkPayment(c.Params("reference"))
	if err != nil {
		if errors.Is(err, service.ErrBulkRefNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch bulk payment"})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"bulk_payment": bulk,
		"orders":       orders,
	}})
}

// ExecuteBulk marks a batch of purchase orders paid in one transaction
// POST /api/v1/payments/bulk
func (h *PaymentHandler) ExecuteBulk(c *fiber.Ctx) error {
	var req service.BulkPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	bulk, err := h.paymentService.ExecuteBulk(&req, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBatch):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrReferenceInUse):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Bulk payment executed",
		"data":    bulk,
	})
}

// RollbackBulk undoes an executed bulk payment batch
// DELETE /api/v1/payments/bulk/:reference
func (h *PaymentHandler) RollbackBulk(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Bulk payment reference is required"})
	}

	if err := h.paymentService.RollbackBulk(reference, middleware.ActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrBulkRefNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Bulk payment rolled back"})
}

// PaySingle records a partial or full payment against one order
// POST /api/v1/payments/orders/:id
func (h *PaymentHandler) PaySingle(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	po, err := h.paymentService.PaySingle(id, req.Amount, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOverpayment):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrOrderNotPayable):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Payment recorded",
		"data":    po,
	})
}
