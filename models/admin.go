package models

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleBrandAdmin = "brand_admin"
)

type Admin struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	Email            string       `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password         string       `gorm:"not null" json:"-"`
	Name             string       `gorm:"not null" json:"name" validate:"required"`
	Role             string       `gorm:"not null;default:brand_admin" json:"role"`
	RequiresApproval bool         `json:"requiresApproval"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
	Brands           []AdminBrand `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"brands"`
}

func (a *Admin) IsSuper() bool {
	return a.Role == RoleSuperAdmin
}

// AdminBrand links a brand_admin to a brand it may manage.
type AdminBrand struct {
	ID      uint  `gorm:"primaryKey" json:"-"`
	AdminID uint  `gorm:"index" json:"-"`
	BrandID uint  `gorm:"index" json:"brandId"`
	Brand   Brand `gorm:"foreignKey:BrandID" json:"-"`
}
