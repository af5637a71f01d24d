package services

import (
	"fmt"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup creates the user and clones the full global taxonomy into
// user-scoped rows, all inside one transaction: a failure anywhere leaves no
// user and no partial taxonomy. User-categories are inserted first so the
// global-category-id to clone-id mapping is complete before any
// user-subcategory references it.
func Signup(email, password string) (*models.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		var categories []models.Category

		if err := tx.Order("id").Find(&categories).Error; err != nil {
			return err
		}

		categoryToUserCategory := make(map[uint]uint, len(categories))

		for _, category := range categories {
			categoryID := category.ID

			userCategory := models.UserCategory{
				UserID:     user.ID,
				CategoryID: &categoryID,
				Name:       category.Name,
				Active:     true,
			}

			if err := tx.Create(&userCategory).Error; err != nil {
				return err
			}

			categoryToUserCategory[category.ID] = userCategory.ID
		}

		var subcategories []models.Subcategory

		if err := tx.Order("id").Find(&subcategories).Error; err != nil {
			return err
		}

		for _, subcategory := range subcategories {
			userCategoryID, ok := categoryToUserCategory[subcategory.CategoryID]

			if !ok {
				return fmt.Errorf("no cloned category for subcategory %d", subcategory.ID)
			}

			subcategoryID := subcategory.ID

			userSubcategory := models.UserSubcategory{
				UserID:         user.ID,
				SubcategoryID:  &subcategoryID,
				UserCategoryID: userCategoryID,
				Name:           subcategory.Name,
				Active:         true,
			}

			if err := tx.Create(&userSubcategory).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate looks the user up by email and verifies the password.
// Returns gorm.ErrRecordNotFound for an unknown email or a wrong password so
// callers cannot tell the two apart.
func Authenticate(email, password string) (*models.User, error) {
	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	return &user, nil
}
