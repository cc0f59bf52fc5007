package handler

import (
	"fmt"
	"time"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/paymentterm"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type PaymentTermHandler struct {
	termRepo repository.PaymentTermRepository
}

func NewPaymentTermHandler(termRepo repository.PaymentTermRepository) *PaymentTermHandler {
	return &PaymentTermHandler{termRepo: termRepo}
}

// ListPaymentTerms lists all payment term configurations
// GET /api/v1/payment-terms
func (h *PaymentTermHandler) ListPaymentTerms(c *fiber.Ctx) error {
	terms, err := h.termRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment terms"})
	}
	return c.JSON(fiber.Map{"data": terms})
}

// CreatePaymentTerm creates a payment term
// POST /api/v1/payment-terms
func (h *PaymentTermHandler) CreatePaymentTerm(c *fiber.Ctx) error {
	var term model.PaymentTerm
	if err := c.BodyParser(&term); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&term); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)})
	}

	if err := h.termRepo.Create(&term); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create payment term"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Payment term created successfully",
		"data":    term,
	})
}

// UpdatePaymentTerm updates a payment term
// PUT /api/v1/payment-terms/:id
func (h *PaymentTermHandler) UpdatePaymentTerm(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payment term ID"})
	}

	term, err := h.termRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Payment term not found"})
	}

	var req model.PaymentTerm
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)})
	}

	term.Name = req.Name
	term.Kind = req.Kind
	term.Days = req.Days
	term.Anchors = req.Anchors
	term.Weekday = req.Weekday

	if err := h.termRepo.Update(term); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update payment term"})
	}

	return c.JSON(fiber.Map{
		"message": "Payment term updated successfully",
		"data":    term,
	})
}

// PreviewDueDate computes the due date a term would produce for a base
// date, so the UI can show it before an order is saved.
// POST /api/v1/payment-terms/:id/preview
func (h *PaymentTermHandler) PreviewDueDate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payment term ID"})
	}

	var req struct {
		BaseDate string `json:"base_date"` // YYYY-MM-DD
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	base, err := time.Parse("2006-01-02", req.BaseDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "base_date must be YYYY-MM-DD"})
	}

	term, err := h.termRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Payment term not found"})
	}

	result := paymentterm.DueDate(base, term.ToTerm())
	if !result.OK {
		return c.JSON(fiber.Map{"data": fiber.Map{
			"due_date": nil,
			"reason":   result.Reason,
		}})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"due_date": result.Due.Format("2006-01-02"),
	}})
}
