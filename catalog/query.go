package catalog

import (
	"strings"

	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListFilter is the single query shape for product listings, public and
// admin alike. BrandIDs carries three meanings:
//
//	nil pointer        public caller, only approved products are visible
//	pointer to empty   privileged caller, unrestricted
//	pointer to values  privileged caller, restricted to these brand ids
//
// The brand restriction is applied in SQL so pagination counts stay correct.
type ListFilter struct {
	Category    string
	Subcategory string
	Search      string
	Page        int
	Limit       int
	BrandIDs    *[]uint
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func (f *ListFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
}

func (f *ListFilter) apply(q *gorm.DB) *gorm.DB {
	if f.BrandIDs == nil {
		q = q.Where("status = ?", models.ProductStatusApproved)
	} else if len(*f.BrandIDs) > 0 {
		q = q.Where("brand_id IN ?", *f.BrandIDs)
	}
	if f.Category != "" {
		q = q.Where("category_id = ?", f.Category)
	}
	if f.Subcategory != "" {
		q = q.Where("subcategory_id = ?", f.Subcategory)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(short_desc) LIKE ? OR LOWER(product_code) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return q
}

// ListProducts runs the filtered, paginated product query.
func ListProducts(db *gorm.DB, filter ListFilter) ([]models.Product, Pagination, error) {
	filter.normalize()

	var total int64
	if err := filter.apply(db.Model(&models.Product{})).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperr.Internal(err)
	}

	var products []models.Product
	err := filter.apply(db.Model(&models.Product{})).
		Preload("Category").
		Preload("Subcategory").
		Preload("Brand").
		Preload("Images", func(q *gorm.DB) *gorm.DB { return q.Order("display_order ASC") }).
		Preload("Variants").
		Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, Pagination{}, apperr.Internal(err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return products, Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
