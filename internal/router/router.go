package router

import (
	"time"

	"github.com/chrisFinnerty/finwize/internal/handlers"
	"github.com/chrisFinnerty/finwize/internal/middleware"
	"github.com/chrisFinnerty/finwize/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		accounts := api.Group("/accounts", middleware.AuthMiddleware())
		{
			accounts.POST("", handlers.CreateAccount)
			accounts.GET("", handlers.ListAccounts)
			accounts.PUT("/:account_id", handlers.UpdateAccount)
		}

		categories := api.Group("/categories", middleware.AuthMiddleware())
		{
			categories.GET("", handlers.ListCategories)
			categories.PATCH("/:category_id", handlers.UpdateCategory)
		}

		subcategories := api.Group("/subcategories", middleware.AuthMiddleware())
		{
			subcategories.PATCH("/:subcategory_id", handlers.UpdateSubcategory)
		}

		transactions := api.Group("/transactions", middleware.AuthMiddleware())
		{
			transactions.POST("", handlers.CreateTransaction)
			transactions.GET("", handlers.ListTransactions)
			transactions.PUT("/:transaction_id", handlers.UpdateTransaction)
		}

		dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
		{
			dashboard.GET("", handlers.GetDashboard)
			dashboard.GET("/summary", handlers.GetMonthSummaryJSON)
		}

		budgets := api.Group("/budgets", middleware.AuthMiddleware())
		{
			budgets.PUT("", handlers.UpdateBudget)
		}
	}

	return r
}
