package services

import (
	"testing"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/chrisFinnerty/finwize/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSignupClonesTaxonomy(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)

	user, err := Signup("user@test.com", "password123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	var categoryCount, subcategoryCount int64
	require.NoError(t, db.DB.Model(&models.Category{}).Count(&categoryCount).Error)
	require.NoError(t, db.DB.Model(&models.Subcategory{}).Count(&subcategoryCount).Error)

	var userCategories []models.UserCategory
	require.NoError(t, db.DB.Where("user_id = ?", user.ID).Find(&userCategories).Error)
	assert.Len(t, userCategories, int(categoryCount))

	var userSubcategories []models.UserSubcategory
	require.NoError(t, db.DB.Where("user_id = ?", user.ID).Find(&userSubcategories).Error)
	assert.Len(t, userSubcategories, int(subcategoryCount))

	for _, userCategory := range userCategories {
		assert.True(t, userCategory.Active)
	}

	// Groceries must hang off the clone of Food, not off the global row.
	cloneByName := make(map[string]models.UserCategory)
	for _, userCategory := range userCategories {
		cloneByName[userCategory.Name] = userCategory
	}

	for _, userSubcategory := range userSubcategories {
		assert.True(t, userSubcategory.Active)
		assert.Equal(t, user.ID, userSubcategory.UserID)

		switch userSubcategory.Name {
		case "Groceries", "Dining Out":
			assert.Equal(t, cloneByName["Food"].ID, userSubcategory.UserCategoryID)
		case "Mortgage":
			assert.Equal(t, cloneByName["Rent"].ID, userSubcategory.UserCategoryID)
		default:
			t.Fatalf("unexpected cloned subcategory %q", userSubcategory.Name)
		}
	}
}

func TestSignupDuplicateEmailLeavesNoPartialState(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)

	_, err := Signup("dup@test.com", "password123")
	require.NoError(t, err)

	_, err = Signup("dup@test.com", "password456")
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var userCount, userCategoryCount, userSubcategoryCount int64
	require.NoError(t, db.DB.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.DB.Model(&models.UserCategory{}).Count(&userCategoryCount).Error)
	require.NoError(t, db.DB.Model(&models.UserSubcategory{}).Count(&userSubcategoryCount).Error)

	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(2), userCategoryCount)
	assert.Equal(t, int64(3), userSubcategoryCount)
}

func TestSignupWithEmptyCatalog(t *testing.T) {
	testutil.SetupDB(t)

	user, err := Signup("empty@test.com", "password123")
	require.NoError(t, err)

	var userCategoryCount int64
	require.NoError(t, db.DB.Model(&models.UserCategory{}).Where("user_id = ?", user.ID).Count(&userCategoryCount).Error)
	assert.Zero(t, userCategoryCount)
}

func TestAuthenticate(t *testing.T) {
	testutil.SetupDB(t)

	_, err := Signup("auth@test.com", "password123")
	require.NoError(t, err)

	user, err := Authenticate("auth@test.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "auth@test.com", user.Email)

	_, err = Authenticate("auth@test.com", "wrongpassword")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = Authenticate("nobody@test.com", "password123")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
