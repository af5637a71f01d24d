package models

import "gorm.io/gorm"

type UserSubcategory struct {
	gorm.Model

	UserID         uint   `gorm:"not null;index"`
	SubcategoryID  *uint  `gorm:"index"`
	UserCategoryID uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Active         bool   `gorm:"not null;default:true"`

	// Relationships
	User         User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserCategory UserCategory `gorm:"foreignKey:UserCategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
