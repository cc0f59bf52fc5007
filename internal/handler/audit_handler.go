package handler

import (
	"strconv"

	"go-backoffice-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListEntries lists audit entries, newest first. Optional filters:
// entity_type, entity_id, limit.
// GET /api/v1/audit-logs
func (h *AuditHandler) ListEntries(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.Status(400).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	entries, err := h.auditService.ListEntries(c.Query("entity_type"), c.Query("entity_id"), limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit entries"})
	}

	return c.JSON(fiber.Map{"data": entries})
}
