// Package testutil wires the package-level database handle to an in-memory
// SQLite instance so service and handler tests run against real SQL.
package testutil

import (
	"testing"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB points db.DB at a fresh in-memory database and migrates the schema.
func SetupDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	// A single connection keeps every session on the same :memory: database.
	sqlDB.SetMaxOpenConns(1)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())
}

// SeedTaxonomy installs a small global catalog: Food (Groceries, Dining Out)
// and Rent (Mortgage).
func SeedTaxonomy(t *testing.T) {
	t.Helper()

	food := models.Category{Name: "Food", Active: true}
	rent := models.Category{Name: "Rent", Active: true}
	require.NoError(t, db.DB.Create(&food).Error)
	require.NoError(t, db.DB.Create(&rent).Error)

	require.NoError(t, db.DB.Create(&models.Subcategory{CategoryID: food.ID, Name: "Groceries", Active: true}).Error)
	require.NoError(t, db.DB.Create(&models.Subcategory{CategoryID: food.ID, Name: "Dining Out", Active: true}).Error)
	require.NoError(t, db.DB.Create(&models.Subcategory{CategoryID: rent.ID, Name: "Mortgage", Active: true}).Error)
}
