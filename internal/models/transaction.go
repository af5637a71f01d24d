package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a dated, signed amount recorded against one of the user's
// cloned subcategories. The referenced account and taxonomy rows must belong
// to the same user as UserID; handlers enforce that before writing.
type Transaction struct {
	gorm.Model

	UserID            uint            `gorm:"not null;index"`
	AccountID         *uint           `gorm:"index"`
	UserCategoryID    uint            `gorm:"not null;index"`
	UserSubcategoryID uint            `gorm:"not null;index"`
	Amount            decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Description       string
	TranDate          time.Time `gorm:"not null;index"`

	// Relationships
	User            User            `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Account         *Account        `gorm:"foreignKey:AccountID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserCategory    UserCategory    `gorm:"foreignKey:UserCategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserSubcategory UserSubcategory `gorm:"foreignKey:UserSubcategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
