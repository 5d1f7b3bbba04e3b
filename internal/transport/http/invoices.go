// internal/transport/http/invoices.go
package http

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/pagination"
)

func (h *Handler) GetInvoices(c *fiber.Ctx) error {
	page := getQueryInt(c, "page", 1, 1, 100000)
	perPage := getQueryInt(c, "per_page", 100, 1, 1000)

	paginator := pagination.New(page, perPage, requestURL(c))

	invoices, err := h.invoices.GetInvoices(c.Context(), paginator.Limit(), paginator.Offset())
	if err != nil {
		log.Printf("❌ [INVOICES] Failed to list invoices: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch invoices"})
	}
	totalCount, err := h.invoices.CountInvoices(c.Context())
	if err != nil {
		log.Printf("❌ [INVOICES] Failed to count invoices: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch invoices"})
	}

	return c.JSON(paginator.Paginate(totalCount, invoices))
}

// GetInvoice returns a single invoice by its Odoo id.
func (h *Handler) GetInvoice(c *fiber.Ctx) error {
	odooID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid invoice id"})
	}

	invoice, err := h.invoices.GetByOdooID(c.Context(), odooID)
	if err != nil {
		log.Printf("❌ [INVOICES] Failed to fetch invoice %d: %v", odooID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch invoice"})
	}
	if invoice == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return c.JSON(invoice)
}
