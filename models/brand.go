package models

import "time"

type Brand struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name" validate:"required"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Logo      *string   `json:"logo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Products  []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}
