// internal/transport/http/odoo.go
package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/odoo"
)

// NOTE: all endpoints from this file are for utils and testing purposes of
// the odoo API functionality

// odooError maps the remote fault taxonomy onto HTTP statuses: a fault is the
// caller's request being rejected, a protocol error is the upstream being
// unreachable or broken.
func odooError(c *fiber.Ctx, err error) error {
	var fault *odoo.FaultError
	if errors.As(err, &fault) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        "odoo rejected the request",
			"fault_code":   fault.Code,
			"fault_string": fault.Message,
		})
	}
	var protocol *odoo.ProtocolError
	if errors.As(err, &protocol) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "odoo is unreachable",
			"code":    protocol.Code,
			"message": protocol.Message,
		})
	}
	if errors.Is(err, odoo.ErrAuthenticationFailed) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "authentication with odoo failed"})
	}
	log.Printf("❌ [ODOO] Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "odoo operation failed"})
}

func (h *Handler) GetOdooVersion(c *fiber.Ctx) error {
	version, err := h.odooService.Version()
	if err != nil {
		return odooError(c, err)
	}
	return c.JSON(version)
}

func (h *Handler) GetOdooContacts(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 100, 1, 1000)
	offset := getQueryInt(c, "offset", 0, 0, 100000)

	contacts, err := h.odooService.GetContactsFromOdoo(limit, offset)
	if err != nil {
		return odooError(c, err)
	}
	return c.JSON(contacts)
}

type createContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
}

// CreateOdooContact creates a contact in Odoo and mirrors it locally.
func (h *Handler) CreateOdooContact(c *fiber.Ctx) error {
	var req createContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.CompanyName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, email and company_name are required"})
	}

	odooID, err := h.odooService.CreateAndInsertContact(c.Context(), req.Name, req.Email, req.CompanyName)
	if err != nil {
		return odooError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"odoo_id": odooID})
}

func (h *Handler) GetOdooInvoices(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 100, 1, 1000)
	offset := getQueryInt(c, "offset", 0, 0, 100000)

	invoices, err := h.odooService.GetInvoicesFromOdoo(limit, offset)
	if err != nil {
		return odooError(c, err)
	}
	return c.JSON(invoices)
}

type createInvoiceRequest struct {
	PartnerID    int                `json:"partner_id"`
	InvoiceLines []odoo.InvoiceLine `json:"invoice_lines"`
}

// CreateOdooInvoice creates an invoice in Odoo and mirrors it locally.
func (h *Handler) CreateOdooInvoice(c *fiber.Ctx) error {
	var req createInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.PartnerID == 0 || len(req.InvoiceLines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "partner_id and invoice_lines are required"})
	}

	odooID, err := h.odooService.CreateAndInsertInvoice(c.Context(), req.PartnerID, req.InvoiceLines)
	if err != nil {
		return odooError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"odoo_id": odooID})
}

func (h *Handler) GetOdooPartners(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 100, 1, 1000)
	offset := getQueryInt(c, "offset", 0, 0, 100000)

	partners, err := h.odooService.GetPartnersFromOdoo(limit, offset)
	if err != nil {
		return odooError(c, err)
	}
	return c.JSON(partners)
}
