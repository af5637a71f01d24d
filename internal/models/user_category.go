package models

import "gorm.io/gorm"

// UserCategory is a user's private copy of a global Category, created at
// signup. CategoryID points back at the global row it was cloned from.
type UserCategory struct {
	gorm.Model

	UserID     uint   `gorm:"not null;index"`
	CategoryID *uint  `gorm:"index"`
	Name       string `gorm:"not null"`
	Active     bool   `gorm:"not null;default:true"`

	// Relationships
	User              User              `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserSubcategories []UserSubcategory `gorm:"foreignKey:UserCategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
