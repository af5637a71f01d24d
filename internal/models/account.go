package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is a user-maintained balance (bank, credit card, ...). The balance
// is whatever the user last entered; it is never derived from transactions.
type Account struct {
	gorm.Model

	UserID      uint            `gorm:"not null;index;uniqueIndex:idx_user_account_name"`
	AccountName string          `gorm:"not null;uniqueIndex:idx_user_account_name"`
	Balance     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
