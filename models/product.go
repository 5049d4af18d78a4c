package models

import "time"

const (
	ProductStatusPending  = "pending"
	ProductStatusApproved = "approved"
	ProductStatusRejected = "rejected"
)

// ValidProductStatus reports whether s is one of the three product statuses.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusPending, ProductStatusApproved, ProductStatusRejected:
		return true
	}
	return false
}

type Product struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Title         string           `gorm:"not null" json:"title" validate:"required"`
	ProductCode   *string          `gorm:"uniqueIndex" json:"productCode"`
	ShortDesc     string           `json:"shortDesc"`
	MainImageURL  string           `json:"mainImageUrl"`
	CategoryID    uint             `gorm:"index" json:"categoryId"`
	SubcategoryID *uint            `gorm:"index" json:"subcategoryId"`
	BrandID       *uint            `gorm:"index" json:"brandId"`
	SizeRange     string           `json:"sizeRange"`
	Price         string           `json:"price"`
	Status        string           `gorm:"index;not null;default:pending" json:"status"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory   *Subcategory     `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Brand         *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Images        []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
}

// ProductImage is a gallery image; MainImageURL on the product stays separate.
type ProductImage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ProductID    uint   `gorm:"index;not null" json:"productId"`
	URL          string `gorm:"not null" json:"url"`
	DisplayOrder int    `json:"displayOrder"`
}

// ProductVariant is a sizeRange x color x price combination. When a product
// has variants, clients show per-variant price/size instead of the top-level
// price.
type ProductVariant struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"productId"`
	SizeRange string `json:"sizeRange"`
	Color     string `json:"color"`
	Price     string `json:"price"`
}
