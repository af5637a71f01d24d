package services

import (
	"testing"
	"time"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/chrisFinnerty/finwize/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func signupTestUser(t *testing.T, email string) (*models.User, map[string]models.UserCategory, map[string]models.UserSubcategory) {
	t.Helper()

	user, err := Signup(email, "password123")
	require.NoError(t, err)

	var userCategories []models.UserCategory
	require.NoError(t, db.DB.Where("user_id = ?", user.ID).Find(&userCategories).Error)

	categories := make(map[string]models.UserCategory, len(userCategories))
	for _, userCategory := range userCategories {
		categories[userCategory.Name] = userCategory
	}

	var userSubcategories []models.UserSubcategory
	require.NoError(t, db.DB.Where("user_id = ?", user.ID).Find(&userSubcategories).Error)

	subcategories := make(map[string]models.UserSubcategory, len(userSubcategories))
	for _, userSubcategory := range userSubcategories {
		subcategories[userSubcategory.Name] = userSubcategory
	}

	return user, categories, subcategories
}

func addTransaction(t *testing.T, user *models.User, subcategory models.UserSubcategory, amount string, date time.Time) {
	t.Helper()

	require.NoError(t, db.DB.Create(&models.Transaction{
		UserID:            user.ID,
		UserCategoryID:    subcategory.UserCategoryID,
		UserSubcategoryID: subcategory.ID,
		Amount:            decimal.RequireFromString(amount),
		TranDate:          date,
	}).Error)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestEnsureMonthlyBudgetsIsIdempotent(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, _, subcategories := signupTestUser(t, "ensure@test.com")

	require.NoError(t, EnsureMonthlyBudgets(user.ID, 3, 2024))
	require.NoError(t, EnsureMonthlyBudgets(user.ID, 3, 2024))

	var count int64
	require.NoError(t, db.DB.Model(&models.MonthlyBudget{}).
		Where("user_id = ? AND month = ? AND year = ?", user.ID, 3, 2024).
		Count(&count).Error)
	assert.Equal(t, int64(len(subcategories)), count)

	var perKey int64
	require.NoError(t, db.DB.Model(&models.MonthlyBudget{}).
		Where("user_id = ? AND user_subcategory_id = ? AND month = ? AND year = ?", user.ID, subcategories["Groceries"].ID, 3, 2024).
		Count(&perKey).Error)
	assert.Equal(t, int64(1), perKey)
}

func TestEnsureMonthlyBudgetsSkipsInactiveSubcategories(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, _, subcategories := signupTestUser(t, "inactive@test.com")

	require.NoError(t, db.DB.Model(&models.UserSubcategory{}).
		Where("id = ?", subcategories["Dining Out"].ID).
		Update("active", false).Error)

	require.NoError(t, EnsureMonthlyBudgets(user.ID, 6, 2024))

	var count int64
	require.NoError(t, db.DB.Model(&models.MonthlyBudget{}).
		Where("user_id = ? AND month = ? AND year = ?", user.ID, 6, 2024).
		Count(&count).Error)
	assert.Equal(t, int64(len(subcategories)-1), count)
}

func TestSubcategoryActualMonthBoundaries(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, _, subcategories := signupTestUser(t, "boundary@test.com")
	groceries := subcategories["Groceries"]

	addTransaction(t, user, groceries, "42.50", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	addTransaction(t, user, groceries, "10.00", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	addTransaction(t, user, groceries, "20.00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	march, err := SubcategoryActual(user.ID, groceries.ID, 3, 2024)
	require.NoError(t, err)
	assertDecimal(t, "42.50", march)

	april, err := SubcategoryActual(user.ID, groceries.ID, 4, 2024)
	require.NoError(t, err)
	assertDecimal(t, "0", april)

	december, err := SubcategoryActual(user.ID, groceries.ID, 12, 2023)
	require.NoError(t, err)
	assertDecimal(t, "10.00", december)

	january, err := SubcategoryActual(user.ID, groceries.ID, 1, 2024)
	require.NoError(t, err)
	assertDecimal(t, "20.00", january)
}

func TestCategoryTotalsMatchSubcategorySums(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, categories, subcategories := signupTestUser(t, "consistency@test.com")
	food := categories["Food"]

	require.NoError(t, EnsureMonthlyBudgets(user.ID, 3, 2024))
	require.NoError(t, UpdateBudget(user.ID, subcategories["Groceries"].ID, 3, 2024, decimal.RequireFromString("300")))
	require.NoError(t, UpdateBudget(user.ID, subcategories["Dining Out"].ID, 3, 2024, decimal.RequireFromString("120.50")))

	addTransaction(t, user, subcategories["Groceries"], "80.25", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	addTransaction(t, user, subcategories["Dining Out"], "35.75", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	addTransaction(t, user, subcategories["Mortgage"], "1500.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	categoryBudgeted, err := CategoryBudgeted(user.ID, food.ID, 3, 2024)
	require.NoError(t, err)

	var subcategorySum decimal.Decimal
	for _, name := range []string{"Groceries", "Dining Out"} {
		budgeted, err := SubcategoryBudgeted(user.ID, subcategories[name].ID, 3, 2024)
		require.NoError(t, err)
		subcategorySum = subcategorySum.Add(budgeted)
	}

	assert.True(t, categoryBudgeted.Equal(subcategorySum), "category %s vs subcategory sum %s", categoryBudgeted, subcategorySum)
	assertDecimal(t, "420.50", categoryBudgeted)

	categoryActual, err := CategoryActual(user.ID, food.ID, 3, 2024)
	require.NoError(t, err)
	assertDecimal(t, "116.00", categoryActual)
}

func TestRollupIgnoresOtherUsers(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, _, subcategories := signupTestUser(t, "owner@test.com")
	other, _, otherSubcategories := signupTestUser(t, "other@test.com")

	addTransaction(t, user, subcategories["Groceries"], "50.00", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	addTransaction(t, other, otherSubcategories["Groceries"], "999.00", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	actual, err := SubcategoryActual(user.ID, subcategories["Groceries"].ID, 3, 2024)
	require.NoError(t, err)
	assertDecimal(t, "50.00", actual)

	summary, err := GetMonthSummary(user.ID, 3, 2024)
	require.NoError(t, err)
	assertDecimal(t, "50.00", summary.Actual)
}

func TestUpdateBudgetMissingRow(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, _, subcategories := signupTestUser(t, "missing@test.com")

	err := UpdateBudget(user.ID, subcategories["Groceries"].ID, 7, 2024, decimal.RequireFromString("100"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.DB.Model(&models.MonthlyBudget{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetMonthSummary(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, _, subcategories := signupTestUser(t, "summary@test.com")

	require.NoError(t, EnsureMonthlyBudgets(user.ID, 3, 2024))
	require.NoError(t, UpdateBudget(user.ID, subcategories["Groceries"].ID, 3, 2024, decimal.RequireFromString("300")))
	require.NoError(t, UpdateBudget(user.ID, subcategories["Mortgage"].ID, 3, 2024, decimal.RequireFromString("1500")))

	addTransaction(t, user, subcategories["Groceries"], "350.00", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	addTransaction(t, user, subcategories["Mortgage"], "1500.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	summary, err := GetMonthSummary(user.ID, 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Month)
	assert.Equal(t, 2024, summary.Year)
	assertDecimal(t, "1800", summary.Budgeted)
	assertDecimal(t, "1850.00", summary.Actual)
	assertDecimal(t, "-50.00", summary.Difference)

	require.Len(t, summary.Categories, 2)

	byName := make(map[string]CategorySummary, len(summary.Categories))
	for _, category := range summary.Categories {
		byName[category.Name] = category
	}

	food := byName["Food"]
	assertDecimal(t, "300", food.Budgeted)
	assertDecimal(t, "350.00", food.Actual)
	assertDecimal(t, "-50.00", food.Difference)
	require.Len(t, food.Subcategories, 2)

	// Overspending on groceries shows up as a negative difference.
	for _, subcategory := range food.Subcategories {
		if subcategory.Name == "Groceries" {
			assertDecimal(t, "-50.00", subcategory.Difference)
		}
	}

	rent := byName["Rent"]
	assertDecimal(t, "1500", rent.Budgeted)
	assertDecimal(t, "0", rent.Difference)
}

func TestGetMonthSummaryExcludesInactiveCategories(t *testing.T) {
	testutil.SetupDB(t)
	testutil.SeedTaxonomy(t)
	user, categories, _ := signupTestUser(t, "hidden@test.com")

	require.NoError(t, db.DB.Model(&models.UserCategory{}).
		Where("id = ?", categories["Rent"].ID).
		Update("active", false).Error)

	summary, err := GetMonthSummary(user.ID, 3, 2024)
	require.NoError(t, err)

	require.Len(t, summary.Categories, 1)
	assert.Equal(t, "Food", summary.Categories[0].Name)
}

func TestAccountsAsOf(t *testing.T) {
	_, ok := AccountsAsOf(nil)
	assert.False(t, ok)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	accounts := []models.Account{
		{Model: gorm.Model{CreatedAt: older, UpdatedAt: newer}},
		{Model: gorm.Model{CreatedAt: older, UpdatedAt: older}},
	}

	asOf, ok := AccountsAsOf(accounts)
	assert.True(t, ok)
	assert.Equal(t, newer, asOf)
}
