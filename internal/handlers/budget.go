package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/chrisFinnerty/finwize/internal/services"
	"github.com/chrisFinnerty/finwize/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpdateBudgetRequest struct {
	UserSubcategoryID uint            `json:"user_subcategory_id" binding:"required"`
	Month             int             `json:"month" binding:"required,min=1,max=12"`
	Year              int             `json:"year" binding:"required,min=1"`
	BudgetedAmount    decimal.Decimal `json:"budgeted_amount"`
}

type DashboardResponse struct {
	Summary  services.MonthSummary `json:"summary"`
	Accounts ListAccountsResponse  `json:"accounts"`
}

type SummarySubcategory struct {
	ID     uint            `json:"id"`
	Name   string          `json:"name"`
	Actual decimal.Decimal `json:"actual"`
}

type SummaryCategory struct {
	ID            uint                 `json:"id"`
	Name          string               `json:"name"`
	TotalBudgeted decimal.Decimal      `json:"total_budgeted"`
	TotalActual   decimal.Decimal      `json:"total_actual"`
	Subcategories []SummarySubcategory `json:"subcategories"`
}

// GetDashboard is the monthly view: it first guarantees a zero-amount budget
// row exists for every active subcategory in the period, then returns the
// batched rollup plus the account balances.
func GetDashboard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	month, year, err := utils.GetMonthYear(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.EnsureMonthlyBudgets(userID, month, year); err != nil {
		log.Printf("Failed to ensure monthly budgets for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare monthly budgets"})
		return
	}

	summary, err := services.GetMonthSummary(userID, month, year)

	if err != nil {
		log.Printf("Failed to build month summary for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	var accounts []models.Account

	if err := db.DB.Where("user_id = ?", userID).Order("account_name").Find(&accounts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}

	ctx.JSON(http.StatusOK, DashboardResponse{
		Summary:  *summary,
		Accounts: buildAccountsResponse(accounts),
	})
}

// GetMonthSummaryJSON is the read endpoint consumed by the dashboard's
// client-side charts: per active category its name and totals, with the
// actuals broken out per subcategory.
func GetMonthSummaryJSON(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	month, year, err := utils.GetMonthYear(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := services.GetMonthSummary(userID, month, year)

	if err != nil {
		log.Printf("Failed to build month summary for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	categories := make([]SummaryCategory, 0, len(summary.Categories))

	for _, category := range summary.Categories {
		subcategories := make([]SummarySubcategory, 0, len(category.Subcategories))

		for _, subcategory := range category.Subcategories {
			subcategories = append(subcategories, SummarySubcategory{
				ID:     subcategory.ID,
				Name:   subcategory.Name,
				Actual: subcategory.Actual,
			})
		}

		categories = append(categories, SummaryCategory{
			ID:            category.ID,
			Name:          category.Name,
			TotalBudgeted: category.Budgeted,
			TotalActual:   category.Actual,
			Subcategories: subcategories,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"month":      month,
		"year":       year,
		"categories": categories,
	})
}

// UpdateBudget overwrites the budgeted amount for one subcategory/month/year.
// The row must already exist (the dashboard view creates it); a miss is a 404
// and nothing is written.
func UpdateBudget(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateBudgetRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err = services.UpdateBudget(userID, req.UserSubcategoryID, req.Month, req.Year, req.BudgetedAmount)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No budget row for that subcategory and month"})
			return
		}
		log.Printf("Failed to update budget for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Budget updated successfully"})
}
