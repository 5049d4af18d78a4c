package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/auth"
	"kioskmart/models"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminUserRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password"`
	Name             string `json:"name" validate:"required"`
	Role             string `json:"role"`
	RequiresApproval *bool  `json:"requiresApproval"`
	BrandIDs         []uint `json:"brandIds"`
}

// adminPayload is the admin shape returned by login and /admin/me.
func adminPayload(admin *models.Admin) fiber.Map {
	brands := make([]fiber.Map, 0, len(admin.Brands))
	for _, link := range admin.Brands {
		brands = append(brands, fiber.Map{
			"brandId":   link.BrandID,
			"brandName": link.Brand.Name,
		})
	}
	return fiber.Map{
		"id":               admin.ID,
		"email":            admin.Email,
		"name":             admin.Name,
		"role":             admin.Role,
		"requiresApproval": admin.RequiresApproval,
		"brands":           brands,
	}
}

func (h *Handler) login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("email and password are required"))
	}

	var admin models.Admin
	err := h.DB.Preload("Brands.Brand").First(&admin, "email = ?", req.Email).Error
	if err != nil || !auth.CheckPassword(admin.Password, req.Password) {
		return h.respondError(c, apperr.Unauthenticated("invalid email or password"))
	}

	token, err := h.Tokens.Issue(admin.ID)
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"token": token, "admin": adminPayload(&admin)})
}

func (h *Handler) me(c *fiber.Ctx) error {
	return c.JSON(adminPayload(currentAdmin(c)))
}

// changeOwnPassword lets any authenticated admin rotate their own password.
func (h *Handler) changeOwnPassword(c *fiber.Ctx) error {
	var body struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required,min=8"`
	}
	if err := c.BodyParser(&body); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(&body); err != nil {
		return h.respondError(c, apperr.Validation("invalid password change: %s", err.Error()))
	}

	admin := currentAdmin(c)
	if !auth.CheckPassword(admin.Password, body.CurrentPassword) {
		return h.respondError(c, apperr.Forbidden("current password is incorrect"))
	}
	hash, err := auth.HashPassword(body.NewPassword)
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	if err := h.DB.Model(admin).Update("password", hash).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password updated successfully"})
}

func (h *Handler) listAdmins(c *fiber.Ctx) error {
	var admins []models.Admin
	if err := h.DB.Preload("Brands.Brand").Order("name ASC").Find(&admins).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	payload := make([]fiber.Map, 0, len(admins))
	for i := range admins {
		payload = append(payload, adminPayload(&admins[i]))
	}
	return c.JSON(payload)
}

func (h *Handler) createAdmin(c *fiber.Ctx) error {
	req := new(adminUserRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid admin: %s", err.Error()))
	}
	if req.Password == "" {
		return h.respondError(c, apperr.Validation("password is required"))
	}
	role := req.Role
	if role == "" {
		role = models.RoleBrandAdmin
	}
	if role != models.RoleSuperAdmin && role != models.RoleBrandAdmin {
		return h.respondError(c, apperr.Validation("invalid role %q", role))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	admin := models.Admin{
		Email:            req.Email,
		Password:         hash,
		Name:             req.Name,
		Role:             role,
		RequiresApproval: true,
	}
	if req.RequiresApproval != nil {
		admin.RequiresApproval = *req.RequiresApproval
	}
	for _, brandID := range req.BrandIDs {
		admin.Brands = append(admin.Brands, models.AdminBrand{BrandID: brandID})
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&admin).Error
	}); err != nil {
		return h.respondError(c, apperr.FromDB(err, "admin", "email"))
	}

	if err := h.DB.Preload("Brands.Brand").First(&admin, admin.ID).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.Status(fiber.StatusCreated).JSON(adminPayload(&admin))
}

func (h *Handler) updateAdmin(c *fiber.Ctx) error {
	var admin models.Admin
	if err := h.DB.First(&admin, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "admin", ""))
	}

	req := new(adminUserRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid admin: %s", err.Error()))
	}
	role := req.Role
	if role == "" {
		role = admin.Role
	}
	if role != models.RoleSuperAdmin && role != models.RoleBrandAdmin {
		return h.respondError(c, apperr.Validation("invalid role %q", role))
	}

	updates := map[string]any{
		"email": req.Email,
		"name":  req.Name,
		"role":  role,
	}
	if req.RequiresApproval != nil {
		updates["requires_approval"] = *req.RequiresApproval
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return h.respondError(c, apperr.Internal(err))
		}
		updates["password"] = hash
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&admin).Updates(updates).Error; err != nil {
			return err
		}
		// brand links are replaced wholesale
		if err := tx.Where("admin_id = ?", admin.ID).
			Delete(&models.AdminBrand{}).Error; err != nil {
			return err
		}
		if len(req.BrandIDs) == 0 {
			return nil
		}
		links := make([]models.AdminBrand, 0, len(req.BrandIDs))
		for _, brandID := range req.BrandIDs {
			links = append(links, models.AdminBrand{AdminID: admin.ID, BrandID: brandID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return h.respondError(c, apperr.FromDB(err, "admin", "email"))
	}

	if err := h.DB.Preload("Brands.Brand").First(&admin, admin.ID).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(adminPayload(&admin))
}

func (h *Handler) deleteAdmin(c *fiber.Ctx) error {
	var admin models.Admin
	if err := h.DB.First(&admin, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "admin", ""))
	}
	if admin.ID == currentAdmin(c).ID {
		return h.respondError(c, apperr.Validation("cannot delete your own account"))
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", admin.ID).
			Delete(&models.AdminBrand{}).Error; err != nil {
			return err
		}
		return tx.Delete(&admin).Error
	})
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Admin deleted successfully"})
}
