package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/models"
)

type categoryRequest struct {
	Name         string `json:"name" validate:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

type subcategoryRequest struct {
	CategoryID uint   `json:"categoryId" validate:"required"`
	Name       string `json:"name" validate:"required"`
}

func (h *Handler) listPublicCategories(c *fiber.Ctx) error {
	var categories []models.Category
	err := h.DB.
		Preload("Subcategories", func(q *gorm.DB) *gorm.DB { return q.Order("name ASC") }).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(categories)
}

func (h *Handler) listAdminCategories(c *fiber.Ctx) error {
	return h.listPublicCategories(c)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	req := new(categoryRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid category: %s", err.Error()))
	}

	category := models.Category{
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "category", "category slug"))
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := h.DB.First(&category, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "category", ""))
	}

	req := new(categoryRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid category: %s", err.Error()))
	}

	category.Name = req.Name
	category.Slug = slug.Make(req.Name)
	category.DisplayOrder = req.DisplayOrder
	if err := h.DB.Save(&category).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "category", "category slug"))
	}
	return c.JSON(category)
}

// deleteCategory cascades to its subcategories.
func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := h.DB.First(&category, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "category", ""))
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).
			Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category deleted successfully"})
}

func (h *Handler) createSubcategory(c *fiber.Ctx) error {
	req := new(subcategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid subcategory: %s", err.Error()))
	}
	var category models.Category
	if err := h.DB.First(&category, req.CategoryID).Error; err != nil {
		return h.respondError(c, apperr.Validation("category %d not found", req.CategoryID))
	}

	subcategory := models.Subcategory{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       slug.Make(req.Name),
	}
	if err := h.DB.Create(&subcategory).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.Status(fiber.StatusCreated).JSON(subcategory)
}

func (h *Handler) updateSubcategory(c *fiber.Ctx) error {
	var subcategory models.Subcategory
	if err := h.DB.First(&subcategory, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "subcategory", ""))
	}

	req := new(subcategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid subcategory: %s", err.Error()))
	}
	var category models.Category
	if err := h.DB.First(&category, req.CategoryID).Error; err != nil {
		return h.respondError(c, apperr.Validation("category %d not found", req.CategoryID))
	}

	subcategory.CategoryID = req.CategoryID
	subcategory.Name = req.Name
	subcategory.Slug = slug.Make(req.Name)
	if err := h.DB.Save(&subcategory).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(subcategory)
}

func (h *Handler) deleteSubcategory(c *fiber.Ctx) error {
	var subcategory models.Subcategory
	if err := h.DB.First(&subcategory, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "subcategory", ""))
	}
	if err := h.DB.Delete(&subcategory).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Subcategory deleted successfully"})
}
