// internal/transport/http/contacts.go
package http

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/pagination"
)

func (h *Handler) GetContacts(c *fiber.Ctx) error {
	isCompany := c.QueryBool("is_company", false)
	page := getQueryInt(c, "page", 1, 1, 100000)
	perPage := getQueryInt(c, "per_page", 100, 1, 1000)

	paginator := pagination.New(page, perPage, requestURL(c))

	contacts, err := h.contacts.GetContacts(c.Context(), isCompany, paginator.Limit(), paginator.Offset())
	if err != nil {
		log.Printf("❌ [CONTACTS] Failed to list contacts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch contacts"})
	}
	totalCount, err := h.contacts.CountContacts(c.Context(), isCompany)
	if err != nil {
		log.Printf("❌ [CONTACTS] Failed to count contacts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch contacts"})
	}

	return c.JSON(paginator.Paginate(totalCount, contacts))
}

// GetContact returns a single contact by its Odoo id.
func (h *Handler) GetContact(c *fiber.Ctx) error {
	odooID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid contact id"})
	}

	contact, err := h.contacts.GetByOdooID(c.Context(), odooID)
	if err != nil {
		log.Printf("❌ [CONTACTS] Failed to fetch contact %d: %v", odooID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch contact"})
	}
	if contact == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contact not found"})
	}
	return c.JSON(contact)
}
