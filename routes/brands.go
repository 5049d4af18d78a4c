package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/models"
)

type brandRequest struct {
	Name string  `json:"name" validate:"required"`
	Logo *string `json:"logo"`
}

func (h *Handler) listPublicBrands(c *fiber.Ctx) error {
	var brands []models.Brand
	if err := h.DB.Order("name ASC").Find(&brands).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(brands)
}

// getBrandBySlug returns the brand with its approved products only.
func (h *Handler) getBrandBySlug(c *fiber.Ctx) error {
	var brand models.Brand
	err := h.DB.
		Preload("Products", func(q *gorm.DB) *gorm.DB {
			return q.Where("status = ?", models.ProductStatusApproved).
				Order("created_at DESC, id DESC")
		}).
		Preload("Products.Images", func(q *gorm.DB) *gorm.DB {
			return q.Order("display_order ASC")
		}).
		Preload("Products.Variants").
		First(&brand, "slug = ?", c.Params("slug")).Error
	if err != nil {
		return h.respondError(c, apperr.FromDB(err, "brand", ""))
	}
	return c.JSON(brand)
}

func (h *Handler) listAdminBrands(c *fiber.Ctx) error {
	return h.listPublicBrands(c)
}

func (h *Handler) createBrand(c *fiber.Ctx) error {
	req := new(brandRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid brand: %s", err.Error()))
	}

	brand := models.Brand{
		Name: req.Name,
		Slug: slug.Make(req.Name),
		Logo: req.Logo,
	}
	if err := h.DB.Create(&brand).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "brand", "brand slug"))
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

func (h *Handler) updateBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "brand", ""))
	}

	req := new(brandRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid brand: %s", err.Error()))
	}

	brand.Name = req.Name
	brand.Slug = slug.Make(req.Name)
	brand.Logo = req.Logo
	if err := h.DB.Save(&brand).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "brand", "brand slug"))
	}
	return c.JSON(brand)
}

// deleteBrand detaches its products (brand_id goes null, no cascade) and
// removes any admin assignments pointing at it.
func (h *Handler) deleteBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "brand", ""))
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("brand_id = ?", brand.ID).
			Update("brand_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("brand_id = ?", brand.ID).
			Delete(&models.AdminBrand{}).Error; err != nil {
			return err
		}
		return tx.Delete(&brand).Error
	})
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Brand deleted successfully"})
}
