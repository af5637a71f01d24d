package handlers

import (
	"errors"
	"net/http"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"github.com/chrisFinnerty/finwize/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetActiveRequest carries the toggle as a pointer so an explicit false is
// distinguishable from a missing field.
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

type UserSubcategoryResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type UserCategoryResponse struct {
	ID            uint                      `json:"id"`
	Name          string                    `json:"name"`
	Active        bool                      `json:"active"`
	Subcategories []UserSubcategoryResponse `json:"subcategories"`
}

// ListCategories returns the user's cloned taxonomy, active and inactive,
// with subcategories nested under their parent.
func ListCategories(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var categories []models.UserCategory

	if err := db.DB.Where("user_id = ?", userID).Order("name").Find(&categories).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	var subcategories []models.UserSubcategory

	if err := db.DB.Where("user_id = ?", userID).Order("name").Find(&subcategories).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subcategories"})
		return
	}

	subcategoriesByCategory := make(map[uint][]UserSubcategoryResponse, len(categories))

	for _, subcategory := range subcategories {
		subcategoriesByCategory[subcategory.UserCategoryID] = append(subcategoriesByCategory[subcategory.UserCategoryID], UserSubcategoryResponse{
			ID:     subcategory.ID,
			Name:   subcategory.Name,
			Active: subcategory.Active,
		})
	}

	response := make([]UserCategoryResponse, 0, len(categories))

	for _, category := range categories {
		subs := subcategoriesByCategory[category.ID]

		if subs == nil {
			subs = []UserSubcategoryResponse{}
		}

		response = append(response, UserCategoryResponse{
			ID:            category.ID,
			Name:          category.Name,
			Active:        category.Active,
			Subcategories: subs,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	categoryID, err := utils.GetIDParam(ctx, "category_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req SetActiveRequest

	if err := ctx.BindJSON(&req); err != nil || req.Active == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var category models.UserCategory

	if err := db.DB.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		}
		return
	}

	category.Active = *req.Active

	if err := db.DB.Save(&category).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	ctx.JSON(http.StatusOK, UserCategoryResponse{
		ID:     category.ID,
		Name:   category.Name,
		Active: category.Active,
	})
}

func UpdateSubcategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	subcategoryID, err := utils.GetIDParam(ctx, "subcategory_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req SetActiveRequest

	if err := ctx.BindJSON(&req); err != nil || req.Active == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var subcategory models.UserSubcategory

	if err := db.DB.Where("id = ? AND user_id = ?", subcategoryID, userID).First(&subcategory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subcategory"})
		}
		return
	}

	subcategory.Active = *req.Active

	if err := db.DB.Save(&subcategory).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subcategory"})
		return
	}

	ctx.JSON(http.StatusOK, UserSubcategoryResponse{
		ID:     subcategory.ID,
		Name:   subcategory.Name,
		Active: subcategory.Active,
	})
}
