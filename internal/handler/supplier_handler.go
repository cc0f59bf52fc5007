package handler

import (
	"fmt"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SupplierHandler talks to the repository directly. Suppliers are a
// flat admin table with no business rules beyond validation.
type SupplierHandler struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierHandler(supplierRepo repository.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{supplierRepo: supplierRepo}
}

type supplierRequest struct {
	Name          string     `json:"name" validate:"required"`
	ContactPerson string     `json:"contact_person"`
	PhoneNumber   string     `json:"phone_number"`
	PaymentTermID *uuid.UUID `json:"payment_term_id"`
	IsActive      *bool      `json:"is_active"`
}

// ListSuppliers lists all suppliers with their payment terms
// GET /api/v1/suppliers
func (h *SupplierHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.supplierRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch suppliers"})
	}
	return c.JSON(fiber.Map{"data": suppliers})
}

// GetSupplier returns one supplier
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.supplierRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}
	return c.JSON(fiber.Map{"data": supplier})
}

// CreateSupplier creates a supplier
// POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)})
	}

	supplier := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
		PaymentTermID: req.PaymentTermID,
		IsActive:      true,
	}
	if err := h.supplierRepo.Create(supplier); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create supplier"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Supplier created successfully",
		"data":    supplier,
	})
}

// UpdateSupplier updates a supplier
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)})
	}

	supplier, err := h.supplierRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}

	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.PhoneNumber = req.PhoneNumber
	supplier.PaymentTermID = req.PaymentTermID
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := h.supplierRepo.Update(supplier); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update supplier"})
	}

	return c.JSON(fiber.Map{
		"message": "Supplier updated successfully",
		"data":    supplier,
	})
}
