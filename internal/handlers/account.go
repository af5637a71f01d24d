package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/chrisFinnerty/finwize/internal/services"
	"github.com/chrisFinnerty/finwize/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NoAccountsSentinel is rendered as the "as of" value when the user has not
// registered any accounts yet.
const NoAccountsSentinel = "No accounts yet"

type CreateAccountRequest struct {
	AccountName string          `json:"account_name" binding:"required"`
	Balance     decimal.Decimal `json:"balance"`
}

type UpdateAccountRequest struct {
	AccountName string          `json:"account_name" binding:"required"`
	Balance     decimal.Decimal `json:"balance"`
}

type AccountResponse struct {
	ID          uint            `json:"id"`
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ListAccountsResponse struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance decimal.Decimal   `json:"total_balance"`
	AsOf         string            `json:"as_of"`
}

func CreateAccount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateAccountRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	account := models.Account{
		UserID:      userID,
		AccountName: req.AccountName,
		Balance:     req.Balance,
	}

	if err := db.DB.Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "An account with that name already exists"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	ctx.JSON(http.StatusCreated, AccountResponse{
		ID:          account.ID,
		AccountName: account.AccountName,
		Balance:     account.Balance,
		UpdatedAt:   account.UpdatedAt,
	})
}

func ListAccounts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var accounts []models.Account

	if err := db.DB.Where("user_id = ?", userID).Order("account_name").Find(&accounts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}

	ctx.JSON(http.StatusOK, buildAccountsResponse(accounts))
}

func UpdateAccount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	accountID, err := utils.GetIDParam(ctx, "account_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateAccountRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var account models.Account

	if err := db.DB.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	account.AccountName = req.AccountName
	account.Balance = req.Balance

	if err := db.DB.Save(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "An account with that name already exists"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}

	ctx.JSON(http.StatusOK, AccountResponse{
		ID:          account.ID,
		AccountName: account.AccountName,
		Balance:     account.Balance,
		UpdatedAt:   account.UpdatedAt,
	})
}

func buildAccountsResponse(accounts []models.Account) ListAccountsResponse {
	response := ListAccountsResponse{
		Accounts: make([]AccountResponse, 0, len(accounts)),
		AsOf:     NoAccountsSentinel,
	}

	for _, account := range accounts {
		response.Accounts = append(response.Accounts, AccountResponse{
			ID:          account.ID,
			AccountName: account.AccountName,
			Balance:     account.Balance,
			UpdatedAt:   account.UpdatedAt,
		})

		response.TotalBalance = response.TotalBalance.Add(account.Balance)
	}

	if asOf, ok := services.AccountsAsOf(accounts); ok {
		response.AsOf = asOf.Format(time.RFC3339)
	}

	return response
}
