package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/chrisFinnerty/finwize/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaxonomyFiles(t *testing.T, categoriesCSV, subcategoriesCSV string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.csv"), []byte(categoriesCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subcategories.csv"), []byte(subcategoriesCSV), 0o644))
	return dir
}

func TestLoadTaxonomyCSV(t *testing.T) {
	dir := writeTaxonomyFiles(t,
		"name,active\nFood,true\nRent,true\n",
		"category,name,active\nFood,Groceries,true\nRent,Mortgage,false\n")

	categories, subcategories, err := LoadTaxonomyCSV(dir)
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, CategorySeed{Name: "Food", Active: true}, categories[0])

	require.Len(t, subcategories, 2)
	assert.Equal(t, SubcategorySeed{CategoryName: "Rent", Name: "Mortgage", Active: false}, subcategories[1])
}

func TestLoadTaxonomyCSVRejectsBadBoolean(t *testing.T) {
	dir := writeTaxonomyFiles(t,
		"name,active\nFood,maybe\n",
		"category,name,active\n")

	_, _, err := LoadTaxonomyCSV(dir)
	assert.ErrorContains(t, err, "not a boolean value")
}

func TestSeedTaxonomyReplacesCatalog(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)

	err := SeedTaxonomy(
		[]CategorySeed{{Name: "Travel", Active: true}},
		[]SubcategorySeed{{CategoryName: "Travel", Name: "Flights", Active: true}})
	require.NoError(t, err)

	var categories []models.Category
	require.NoError(t, db.DB.Find(&categories).Error)
	require.Len(t, categories, 1)
	assert.Equal(t, "Travel", categories[0].Name)

	var subcategories []models.Subcategory
	require.NoError(t, db.DB.Find(&subcategories).Error)
	require.Len(t, subcategories, 1)
	assert.Equal(t, categories[0].ID, subcategories[0].CategoryID)
}

func TestSeedTaxonomyUnknownCategoryRollsBack(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)

	err := SeedTaxonomy(
		[]CategorySeed{{Name: "Travel", Active: true}},
		[]SubcategorySeed{{CategoryName: "Nope", Name: "Flights", Active: true}})
	require.ErrorContains(t, err, "unknown category")

	// The old catalog must survive the failed replacement.
	var categoryCount int64
	require.NoError(t, db.DB.Model(&models.Category{}).Count(&categoryCount).Error)
	assert.Equal(t, int64(2), categoryCount)
}
