// internal/transport/http/handlers.go
package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/repository"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/service"
	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

type Handler struct {
	authService *service.AuthService
	odooService *service.OdooService
	contacts    *repository.ContactRepository
	invoices    *repository.InvoiceRepository
}

func NewHandler(
	authService *service.AuthService,
	odooService *service.OdooService,
	contacts *repository.ContactRepository,
	invoices *repository.InvoiceRepository,
) *Handler {
	return &Handler{
		authService: authService,
		odooService: odooService,
		contacts:    contacts,
		invoices:    invoices,
	}
}

// AuthRequired resolves the bearer token to a stored user and puts it in
// request locals.
func (h *Handler) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "could not validate credentials",
			})
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		user, err := h.authService.CurrentUser(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "could not validate credentials",
			})
		}
		c.Locals("user", user)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// requestURL rebuilds the full resource locator for pagination links.
func requestURL(c *fiber.Ctx) string {
	return c.BaseURL() + c.OriginalURL()
}

func getQueryInt(c *fiber.Ctx, key string, fallback, min, max int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
