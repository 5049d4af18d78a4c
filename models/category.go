package models

import "time"

type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"not null" json:"name" validate:"required"`
	Slug          string        `gorm:"uniqueIndex;not null" json:"slug"`
	DisplayOrder  int           `json:"displayOrder"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"subcategories"`
}

type Subcategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"index;not null" json:"categoryId" validate:"required"`
	Name       string    `gorm:"not null" json:"name" validate:"required"`
	Slug       string    `gorm:"index;not null" json:"slug"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
