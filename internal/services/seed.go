package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"gorm.io/gorm"
)

// CategorySeed is one row of the global catalog files.
type CategorySeed struct {
	Name   string
	Active bool
}

type SubcategorySeed struct {
	CategoryName string
	Name         string
	Active       bool
}

// LoadTaxonomyCSV reads categories.csv and subcategories.csv from dir.
// categories.csv columns: name,active. subcategories.csv columns:
// category,name,active, where category is the parent category's name.
func LoadTaxonomyCSV(dir string) ([]CategorySeed, []SubcategorySeed, error) {
	categoryRows, err := readCSV(filepath.Join(dir, "categories.csv"), 2)

	if err != nil {
		return nil, nil, err
	}

	categories := make([]CategorySeed, 0, len(categoryRows))

	for _, row := range categoryRows {
		active, err := strconv.ParseBool(row[1])

		if err != nil {
			return nil, nil, fmt.Errorf("categories.csv: not a boolean value: %q", row[1])
		}

		categories = append(categories, CategorySeed{Name: row[0], Active: active})
	}

	subcategoryRows, err := readCSV(filepath.Join(dir, "subcategories.csv"), 3)

	if err != nil {
		return nil, nil, err
	}

	subcategories := make([]SubcategorySeed, 0, len(subcategoryRows))

	for _, row := range subcategoryRows {
		active, err := strconv.ParseBool(row[2])

		if err != nil {
			return nil, nil, fmt.Errorf("subcategories.csv: not a boolean value: %q", row[2])
		}

		subcategories = append(subcategories, SubcategorySeed{CategoryName: row[0], Name: row[1], Active: active})
	}

	return categories, subcategories, nil
}

// SeedTaxonomy replaces the global catalog with the given rows, atomically.
// Per-user clones are untouched; only future signups see the new catalog.
func SeedTaxonomy(categories []CategorySeed, subcategories []SubcategorySeed) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("1 = 1").Delete(&models.Category{}).Error; err != nil {
			return err
		}

		nameToID := make(map[string]uint, len(categories))

		for _, seed := range categories {
			category := models.Category{Name: seed.Name, Active: seed.Active}

			if err := tx.Create(&category).Error; err != nil {
				return err
			}

			nameToID[category.Name] = category.ID
		}

		for _, seed := range subcategories {
			categoryID, ok := nameToID[seed.CategoryName]

			if !ok {
				return fmt.Errorf("subcategory %q references unknown category %q", seed.Name, seed.CategoryName)
			}

			subcategory := models.Subcategory{
				CategoryID: categoryID,
				Name:       seed.Name,
				Active:     seed.Active,
			}

			if err := tx.Create(&subcategory).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// readCSV returns the data rows of a headered CSV file.
func readCSV(path string, fields int) ([][]string, error) {
	file, err := os.Open(path)

	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = fields

	var rows [][]string
	header := true

	for {
		row, err := reader.Read()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if header {
			header = false
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}
