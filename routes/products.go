package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/auth"
	"kioskmart/catalog"
	"kioskmart/models"
)

type productVariantRequest struct {
	SizeRange string `json:"sizeRange"`
	Color     string `json:"color"`
	Price     string `json:"price"`
}

type productRequest struct {
	Title         string                  `json:"title" validate:"required"`
	ProductCode   string                  `json:"productCode"`
	ShortDesc     string                  `json:"shortDesc"`
	MainImageURL  string                  `json:"mainImageUrl" validate:"required"`
	CategoryID    uint                    `json:"categoryId" validate:"required"`
	SubcategoryID *uint                   `json:"subcategoryId"`
	BrandID       *uint                   `json:"brandId"`
	SizeRange     string                  `json:"sizeRange"`
	Price         string                  `json:"price"`
	Status        string                  `json:"status"`
	Images        []string                `json:"images"`
	Variants      []productVariantRequest `json:"variants"`
}

func listFilterFromQuery(c *fiber.Ctx) catalog.ListFilter {
	return catalog.ListFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Search:      c.Query("search"),
		Page:        c.QueryInt("page", 1),
		Limit:       c.QueryInt("limit", 0),
	}
}

func productPreloads(q *gorm.DB) *gorm.DB {
	return q.Preload("Category").
		Preload("Subcategory").
		Preload("Brand").
		Preload("Images", func(q *gorm.DB) *gorm.DB { return q.Order("display_order ASC") }).
		Preload("Variants")
}

func listResponse(c *fiber.Ctx, products []models.Product, pagination catalog.Pagination) error {
	return c.JSON(fiber.Map{"data": products, "pagination": pagination})
}

// Public: approved products only, BrandIDs stays nil.
func (h *Handler) listPublicProducts(c *fiber.Ctx) error {
	filter := listFilterFromQuery(c)
	products, pagination, err := catalog.ListProducts(h.DB, filter)
	if err != nil {
		return h.respondError(c, err)
	}
	return listResponse(c, products, pagination)
}

func (h *Handler) getPublicProduct(c *fiber.Ctx) error {
	var product models.Product
	err := productPreloads(h.DB).
		Where("status = ?", models.ProductStatusApproved).
		First(&product, "id = ?", c.Params("id")).Error
	if err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", ""))
	}
	return c.JSON(product)
}

func (h *Handler) getSimilarProducts(c *fiber.Ctx) error {
	var product models.Product
	err := h.DB.Where("status = ?", models.ProductStatusApproved).
		First(&product, "id = ?", c.Params("id")).Error
	if err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", ""))
	}

	var candidates []models.Product
	err = productPreloads(h.DB).
		Where("status = ? AND id != ?", models.ProductStatusApproved, product.ID).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}

	similar := catalog.RankSimilar(&product, candidates, c.QueryInt("limit", catalog.DefaultSimilarLimit))
	return c.JSON(fiber.Map{"data": similar})
}

// Admin: all statuses, restricted to the acting admin's brand scope.
func (h *Handler) listAdminProducts(c *fiber.Ctx) error {
	filter := listFilterFromQuery(c)
	scope := auth.ScopeBrandIDs(currentAdmin(c))
	if scope == nil {
		scope = []uint{} // privileged and unrestricted
	}
	filter.BrandIDs = &scope
	products, pagination, err := catalog.ListProducts(h.DB, filter)
	if err != nil {
		return h.respondError(c, err)
	}
	return listResponse(c, products, pagination)
}

func (h *Handler) getAdminProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := productPreloads(h.DB).First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", ""))
	}
	if !auth.CanAccessBrand(currentAdmin(c), product.BrandID) {
		return h.respondError(c, apperr.Forbidden("product is outside your brand scope"))
	}
	return c.JSON(product)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	req := new(productRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid product: %s", err.Error()))
	}

	admin := currentAdmin(c)
	if !auth.CanAccessBrand(admin, req.BrandID) {
		return h.respondError(c, apperr.Forbidden("brand is outside your scope"))
	}
	status, err := catalog.StatusOnCreate(admin, req.Status)
	if err != nil {
		return h.respondError(c, err)
	}
	if err := h.checkTaxonomy(req.CategoryID, req.SubcategoryID); err != nil {
		return h.respondError(c, err)
	}

	product := models.Product{
		Title:         req.Title,
		ShortDesc:     req.ShortDesc,
		MainImageURL:  req.MainImageURL,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		BrandID:       req.BrandID,
		SizeRange:     req.SizeRange,
		Price:         req.Price,
		Status:        status,
	}
	if code := strings.TrimSpace(req.ProductCode); code != "" {
		product.ProductCode = &code
	}
	product.Images = galleryImages(req.Images)
	product.Variants = productVariants(req.Variants)

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&product).Error
	}); err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", "product code"))
	}

	return h.respondProduct(c, product.ID, fiber.StatusCreated)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	var existing models.Product
	if err := h.DB.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", ""))
	}

	admin := currentAdmin(c)
	if !auth.CanAccessBrand(admin, existing.BrandID) {
		return h.respondError(c, apperr.Forbidden("product is outside your brand scope"))
	}

	req := new(productRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return h.respondError(c, apperr.Validation("invalid product: %s", err.Error()))
	}
	// the target brand must be in scope too
	if !auth.CanAccessBrand(admin, req.BrandID) {
		return h.respondError(c, apperr.Forbidden("brand is outside your scope"))
	}
	status, err := catalog.StatusOnUpdate(admin, existing.Status, req.Status)
	if err != nil {
		return h.respondError(c, err)
	}
	if err := h.checkTaxonomy(req.CategoryID, req.SubcategoryID); err != nil {
		return h.respondError(c, err)
	}

	var productCode *string
	if code := strings.TrimSpace(req.ProductCode); code != "" {
		productCode = &code
	}

	// one transaction: a failure mid-way must not leave a partial image set
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":          req.Title,
			"product_code":   productCode,
			"short_desc":     req.ShortDesc,
			"main_image_url": req.MainImageURL,
			"category_id":    req.CategoryID,
			"subcategory_id": req.SubcategoryID,
			"brand_id":       req.BrandID,
			"size_range":     req.SizeRange,
			"price":          req.Price,
			"status":         status,
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", existing.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", existing.ID).
			Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", existing.ID).
			Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		if images := galleryImages(req.Images); len(images) > 0 {
			for i := range images {
				images[i].ProductID = existing.ID
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		if variants := productVariants(req.Variants); len(variants) > 0 {
			for i := range variants {
				variants[i].ProductID = existing.ID
			}
			if err := tx.Create(&variants).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", "product code"))
	}

	return h.respondProduct(c, existing.ID, fiber.StatusOK)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", ""))
	}
	if !auth.CanAccessBrand(currentAdmin(c), product.BrandID) {
		return h.respondError(c, apperr.Forbidden("product is outside your brand scope"))
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).
			Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).
			Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}

func (h *Handler) approveProduct(c *fiber.Ctx) error {
	return h.moderateProduct(c, models.ProductStatusApproved)
}

func (h *Handler) rejectProduct(c *fiber.Ctx) error {
	return h.moderateProduct(c, models.ProductStatusRejected)
}

func (h *Handler) moderateProduct(c *fiber.Ctx, status string) error {
	if !catalog.CanModerate(currentAdmin(c)) {
		return h.respondError(c, apperr.Forbidden("only a super admin may approve or reject products"))
	}
	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "product", ""))
	}
	if err := h.DB.Model(&product).Update("status", status).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return h.respondProduct(c, product.ID, fiber.StatusOK)
}

func (h *Handler) respondProduct(c *fiber.Ctx, id uint, status int) error {
	var product models.Product
	if err := productPreloads(h.DB).First(&product, id).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.Status(status).JSON(product)
}

// checkTaxonomy verifies the referenced category exists and the subcategory,
// when given, belongs to it.
func (h *Handler) checkTaxonomy(categoryID uint, subcategoryID *uint) error {
	var category models.Category
	if err := h.DB.First(&category, categoryID).Error; err != nil {
		return apperr.Validation("category %d not found", categoryID)
	}
	if subcategoryID != nil {
		var subcategory models.Subcategory
		if err := h.DB.First(&subcategory, *subcategoryID).Error; err != nil {
			return apperr.Validation("subcategory %d not found", *subcategoryID)
		}
		if subcategory.CategoryID != categoryID {
			return apperr.Validation("subcategory %d does not belong to category %d",
				*subcategoryID, categoryID)
		}
	}
	return nil
}

func galleryImages(urls []string) []models.ProductImage {
	var images []models.ProductImage
	for i, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		images = append(images, models.ProductImage{URL: url, DisplayOrder: i})
	}
	return images
}

func productVariants(reqs []productVariantRequest) []models.ProductVariant {
	var variants []models.ProductVariant
	for _, v := range reqs {
		variants = append(variants, models.ProductVariant{
			SizeRange: v.SizeRange,
			Color:     v.Color,
			Price:     v.Price,
		})
	}
	return variants
}
