package models

import "gorm.io/gorm"

type Subcategory struct {
	gorm.Model

	CategoryID uint   `gorm:"not null;index;uniqueIndex:idx_subcategory_name"`
	Name       string `gorm:"not null;uniqueIndex:idx_subcategory_name"`
	Active     bool   `gorm:"not null"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
