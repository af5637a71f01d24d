package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyBudget holds the user-edited budgeted amount for one subcategory in
// one month. The composite unique index is what makes the lazy ensure step
// safe to repeat: concurrent dashboard loads for the same month collapse into
// a single row instead of duplicates.
type MonthlyBudget struct {
	gorm.Model

	UserID            uint            `gorm:"not null;index;uniqueIndex:idx_user_budget_key"`
	UserCategoryID    uint            `gorm:"not null;index"`
	UserSubcategoryID uint            `gorm:"not null;uniqueIndex:idx_user_budget_key"`
	Month             int             `gorm:"not null;uniqueIndex:idx_user_budget_key"`
	Year              int             `gorm:"not null;uniqueIndex:idx_user_budget_key"`
	BudgetedAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	// Relationships
	User            User            `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserCategory    UserCategory    `gorm:"foreignKey:UserCategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserSubcategory UserSubcategory `gorm:"foreignKey:UserSubcategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
