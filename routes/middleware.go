package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kioskmart/apperr"
	"kioskmart/models"
)

const adminLocal = "admin"

// requireAuth verifies the bearer token and loads the acting admin with its
// brand links from the database. The token only proves identity; role and
// scope are always read fresh.
func (h *Handler) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return h.respondError(c, apperr.Unauthenticated("missing bearer token"))
	}
	adminID, err := h.Tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return h.respondError(c, err)
	}

	var admin models.Admin
	if err := h.DB.Preload("Brands.Brand").First(&admin, adminID).Error; err != nil {
		return h.respondError(c, apperr.Unauthenticated("admin no longer exists"))
	}
	c.Locals(adminLocal, &admin)
	return c.Next()
}

func (h *Handler) requireSuper(c *fiber.Ctx) error {
	if !currentAdmin(c).IsSuper() {
		return h.respondError(c, apperr.Forbidden("super admin access required"))
	}
	return c.Next()
}

func currentAdmin(c *fiber.Ctx) *models.Admin {
	admin, _ := c.Locals(adminLocal).(*models.Admin)
	return admin
}
