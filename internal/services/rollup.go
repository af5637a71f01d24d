package services

import (
	"time"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubcategorySummary is one row of the monthly view: what the user planned
// for a subcategory versus what the transactions actually add up to.
type SubcategorySummary struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Actual     decimal.Decimal `json:"actual"`
	Difference decimal.Decimal `json:"difference"`
}

type CategorySummary struct {
	ID            uint                 `json:"id"`
	Name          string               `json:"name"`
	Budgeted      decimal.Decimal      `json:"budgeted"`
	Actual        decimal.Decimal      `json:"actual"`
	Difference    decimal.Decimal      `json:"difference"`
	Subcategories []SubcategorySummary `json:"subcategories"`
}

type MonthSummary struct {
	Month      int               `json:"month"`
	Year       int               `json:"year"`
	Budgeted   decimal.Decimal   `json:"budgeted"`
	Actual     decimal.Decimal   `json:"actual"`
	Difference decimal.Decimal   `json:"difference"`
	Categories []CategorySummary `json:"categories"`
}

// monthRange returns the half-open [start, end) interval covering the month.
// Comparing tran_date against it keeps Dec 31 and Jan 1 on the right sides of
// a year rollover and stays portable across drivers, unlike EXTRACT().
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// EnsureMonthlyBudgets guarantees one MonthlyBudget row per currently active
// subcategory for the given month, creating missing rows with a zero budget.
// The insert ignores conflicts on the (user, subcategory, month, year) unique
// index, so repeated or concurrent calls never produce duplicates.
func EnsureMonthlyBudgets(userID uint, month, year int) error {
	var subcategories []models.UserSubcategory

	if err := db.DB.
		Joins("JOIN user_categories ON user_categories.id = user_subcategories.user_category_id").
		Where("user_subcategories.user_id = ? AND user_subcategories.active = ? AND user_categories.active = ?", userID, true, true).
		Find(&subcategories).Error; err != nil {
		return err
	}

	if len(subcategories) == 0 {
		return nil
	}

	budgets := make([]models.MonthlyBudget, 0, len(subcategories))

	for _, subcategory := range subcategories {
		budgets = append(budgets, models.MonthlyBudget{
			UserID:            userID,
			UserCategoryID:    subcategory.UserCategoryID,
			UserSubcategoryID: subcategory.ID,
			Month:             month,
			Year:              year,
			BudgetedAmount:    decimal.Zero,
		})
	}

	return db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "user_subcategory_id"},
			{Name: "month"},
			{Name: "year"},
		},
		DoNothing: true,
	}).Create(&budgets).Error
}

// UpdateBudget overwrites the budgeted amount on the existing row for exactly
// that (user, subcategory, month, year) key. Returns gorm.ErrRecordNotFound
// without writing anything when the row does not exist; the dashboard ensure
// step is the only place rows are created.
func UpdateBudget(userID, userSubcategoryID uint, month, year int, amount decimal.Decimal) error {
	result := db.DB.Model(&models.MonthlyBudget{}).
		Where("user_id = ? AND user_subcategory_id = ? AND month = ? AND year = ?", userID, userSubcategoryID, month, year).
		Update("budgeted_amount", amount)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SubcategoryBudgeted sums the budgeted amounts for one subcategory in one
// month. Zero when no budget row exists yet.
func SubcategoryBudgeted(userID, userSubcategoryID uint, month, year int) (decimal.Decimal, error) {
	return sumQuery(db.DB.Model(&models.MonthlyBudget{}).
		Select("SUM(budgeted_amount)").
		Where("user_id = ? AND user_subcategory_id = ? AND month = ? AND year = ?", userID, userSubcategoryID, month, year))
}

// SubcategoryActual sums the transaction amounts recorded against one
// subcategory with dates inside the month.
func SubcategoryActual(userID, userSubcategoryID uint, month, year int) (decimal.Decimal, error) {
	start, end := monthRange(month, year)

	return sumQuery(db.DB.Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND user_subcategory_id = ? AND tran_date >= ? AND tran_date < ?", userID, userSubcategoryID, start, end))
}

// CategoryBudgeted sums budgeted amounts across every subcategory under the
// category with a single join, not a per-child loop.
func CategoryBudgeted(userID, userCategoryID uint, month, year int) (decimal.Decimal, error) {
	return sumQuery(db.DB.Model(&models.MonthlyBudget{}).
		Select("SUM(monthly_budgets.budgeted_amount)").
		Joins("JOIN user_subcategories ON user_subcategories.id = monthly_budgets.user_subcategory_id").
		Where("user_subcategories.user_category_id = ? AND monthly_budgets.user_id = ? AND monthly_budgets.month = ? AND monthly_budgets.year = ?",
			userCategoryID, userID, month, year))
}

func CategoryActual(userID, userCategoryID uint, month, year int) (decimal.Decimal, error) {
	start, end := monthRange(month, year)

	return sumQuery(db.DB.Model(&models.Transaction{}).
		Select("SUM(transactions.amount)").
		Joins("JOIN user_subcategories ON user_subcategories.id = transactions.user_subcategory_id").
		Where("user_subcategories.user_category_id = ? AND transactions.user_id = ? AND transactions.tran_date >= ? AND transactions.tran_date < ?",
			userCategoryID, userID, start, end))
}

func sumQuery(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

type subcategoryTotal struct {
	UserSubcategoryID uint
	Total             decimal.Decimal
}

// GetMonthSummary is the one batched read behind a dashboard load: the active
// taxonomy plus two GROUP-BY-subcategory aggregates (budgeted, actual),
// merged in Go into per-subcategory rows, per-category totals and the month
// grand total. Difference is budgeted minus actual at every level; negative
// means overspend.
func GetMonthSummary(userID uint, month, year int) (*MonthSummary, error) {
	var categories []models.UserCategory

	if err := db.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Order("name").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	var subcategories []models.UserSubcategory

	if err := db.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Order("name").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}

	budgetedBySubcategory, err := budgetedTotals(userID, month, year)

	if err != nil {
		return nil, err
	}

	actualBySubcategory, err := actualTotals(userID, month, year)

	if err != nil {
		return nil, err
	}

	subcategoriesByCategory := make(map[uint][]models.UserSubcategory, len(categories))

	for _, subcategory := range subcategories {
		subcategoriesByCategory[subcategory.UserCategoryID] = append(subcategoriesByCategory[subcategory.UserCategoryID], subcategory)
	}

	summary := &MonthSummary{
		Month:      month,
		Year:       year,
		Categories: make([]CategorySummary, 0, len(categories)),
	}

	for _, category := range categories {
		categorySummary := CategorySummary{
			ID:            category.ID,
			Name:          category.Name,
			Subcategories: make([]SubcategorySummary, 0, len(subcategoriesByCategory[category.ID])),
		}

		for _, subcategory := range subcategoriesByCategory[category.ID] {
			budgeted := budgetedBySubcategory[subcategory.ID]
			actual := actualBySubcategory[subcategory.ID]

			categorySummary.Subcategories = append(categorySummary.Subcategories, SubcategorySummary{
				ID:         subcategory.ID,
				Name:       subcategory.Name,
				Budgeted:   budgeted,
				Actual:     actual,
				Difference: budgeted.Sub(actual),
			})

			categorySummary.Budgeted = categorySummary.Budgeted.Add(budgeted)
			categorySummary.Actual = categorySummary.Actual.Add(actual)
		}

		categorySummary.Difference = categorySummary.Budgeted.Sub(categorySummary.Actual)

		summary.Budgeted = summary.Budgeted.Add(categorySummary.Budgeted)
		summary.Actual = summary.Actual.Add(categorySummary.Actual)
		summary.Categories = append(summary.Categories, categorySummary)
	}

	summary.Difference = summary.Budgeted.Sub(summary.Actual)

	return summary, nil
}

func budgetedTotals(userID uint, month, year int) (map[uint]decimal.Decimal, error) {
	var rows []subcategoryTotal

	if err := db.DB.Model(&models.MonthlyBudget{}).
		Select("user_subcategory_id, SUM(budgeted_amount) AS total").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Group("user_subcategory_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return totalsByID(rows), nil
}

func actualTotals(userID uint, month, year int) (map[uint]decimal.Decimal, error) {
	start, end := monthRange(month, year)

	var rows []subcategoryTotal

	if err := db.DB.Model(&models.Transaction{}).
		Select("user_subcategory_id, SUM(amount) AS total").
		Where("user_id = ? AND tran_date >= ? AND tran_date < ?", userID, start, end).
		Group("user_subcategory_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return totalsByID(rows), nil
}

func totalsByID(rows []subcategoryTotal) map[uint]decimal.Decimal {
	totals := make(map[uint]decimal.Decimal, len(rows))

	for _, row := range rows {
		totals[row.UserSubcategoryID] = row.Total
	}

	return totals
}

// AccountsAsOf reports the newest created/updated timestamp across the
// accounts, for the "balances as of" line on the dashboard. The second return
// is false when the user has no accounts; the caller renders a sentinel.
func AccountsAsOf(accounts []models.Account) (time.Time, bool) {
	var asOf time.Time

	for _, account := range accounts {
		if account.CreatedAt.After(asOf) {
			asOf = account.CreatedAt
		}

		if account.UpdatedAt.After(asOf) {
			asOf = account.UpdatedAt
		}
	}

	return asOf, !asOf.IsZero()
}
