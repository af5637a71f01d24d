package models

import "gorm.io/gorm"

// Category is the global, admin-seeded taxonomy shared by all users as a
// template. Users never see these rows directly; signup clones them into
// UserCategory rows.
type Category struct {
	gorm.Model

	Name   string `gorm:"uniqueIndex;not null"`
	Active bool   `gorm:"not null"`

	// Relationships
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
