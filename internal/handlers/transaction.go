package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/chrisFinnerty/finwize/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const tranDateLayout = "2006-01-02"

type TransactionRequest struct {
	AccountID         *uint           `json:"account_id"`
	UserCategoryID    uint            `json:"user_category_id" binding:"required"`
	UserSubcategoryID uint            `json:"user_subcategory_id" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description"`
	TranDate          string          `json:"tran_date" binding:"required"`
}

type TransactionResponse struct {
	ID                uint            `json:"id"`
	AccountID         *uint           `json:"account_id"`
	UserCategoryID    uint            `json:"user_category_id"`
	UserSubcategoryID uint            `json:"user_subcategory_id"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	TranDate          string          `json:"tran_date"`
}

func CreateTransaction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req TransactionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tranDate, err := time.Parse(tranDateLayout, req.TranDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tran_date, expected YYYY-MM-DD"})
		return
	}

	if !verifyTransactionRefs(ctx, userID, &req) {
		return
	}

	transaction := models.Transaction{
		UserID:            userID,
		AccountID:         req.AccountID,
		UserCategoryID:    req.UserCategoryID,
		UserSubcategoryID: req.UserSubcategoryID,
		Amount:            req.Amount,
		Description:       req.Description,
		TranDate:          tranDate,
	}

	if err := db.DB.Create(&transaction).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	ctx.JSON(http.StatusCreated, buildTransactionResponse(transaction))
}

func UpdateTransaction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	transactionID, err := utils.GetIDParam(ctx, "transaction_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req TransactionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tranDate, err := time.Parse(tranDateLayout, req.TranDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tran_date, expected YYYY-MM-DD"})
		return
	}

	var transaction models.Transaction

	if err := db.DB.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	if !verifyTransactionRefs(ctx, userID, &req) {
		return
	}

	transaction.AccountID = req.AccountID
	transaction.UserCategoryID = req.UserCategoryID
	transaction.UserSubcategoryID = req.UserSubcategoryID
	transaction.Amount = req.Amount
	transaction.Description = req.Description
	transaction.TranDate = tranDate

	if err := db.DB.Save(&transaction).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	ctx.JSON(http.StatusOK, buildTransactionResponse(transaction))
}

func ListTransactions(ctx *gin.Context) {
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

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var transactions []models.Transaction

	if err := db.DB.
		Where("user_id = ? AND tran_date >= ? AND tran_date < ?", userID, start, end).
		Order("tran_date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))

	for _, transaction := range transactions {
		response = append(response, buildTransactionResponse(transaction))
	}

	ctx.JSON(http.StatusOK, response)
}

// verifyTransactionRefs checks that the referenced account, category and
// subcategory all belong to the caller and that the subcategory sits under
// the given category. Writes the error response and returns false otherwise;
// another user's ids look identical to missing ones.
func verifyTransactionRefs(ctx *gin.Context, userID uint, req *TransactionRequest) bool {
	if req.AccountID != nil {
		var account models.Account

		if err := db.DB.Where("id = ? AND user_id = ?", *req.AccountID, userID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
			}
			return false
		}
	}

	var subcategory models.UserSubcategory

	if err := db.DB.Where("id = ? AND user_id = ?", req.UserSubcategoryID, userID).First(&subcategory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subcategory"})
		}
		return false
	}

	if subcategory.UserCategoryID != req.UserCategoryID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Subcategory does not belong to that category"})
		return false
	}

	return true
}

func buildTransactionResponse(transaction models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                transaction.ID,
		AccountID:         transaction.AccountID,
		UserCategoryID:    transaction.UserCategoryID,
		UserSubcategoryID: transaction.UserSubcategoryID,
		Amount:            transaction.Amount,
		Description:       transaction.Description,
		TranDate:          transaction.TranDate.Format(tranDateLayout),
	}
}
