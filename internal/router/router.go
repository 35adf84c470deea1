// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trendtaster/trendtaster-backend/internal/config"
	"github.com/trendtaster/trendtaster-backend/internal/handlers"
	"github.com/trendtaster/trendtaster-backend/internal/middleware"
	"github.com/trendtaster/trendtaster-backend/internal/services"
	"github.com/trendtaster/trendtaster-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	uploadService, err := services.NewUploadService(
		db,
		cfg.Upload.PathPrefix,
		time.Duration(cfg.Upload.TicketTTLMins)*time.Minute,
		cfg.Upload.URLPattern,
	)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, cfg)
	storeService := services.NewStoreService(db)
	productService := services.NewProductService(db, storeService)
	updateService := services.NewUpdateService(db, storeService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, updateService, authService)
	storeHandler := handlers.NewStoreHandler(storeService, authService)
	uploadHandler := handlers.NewUploadHandler(uploadService, storageService, authService)
	adminHandler := handlers.NewAdminHandler(adminService, productService, storeService, updateService, authService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
			auth.PATCH("/me", middleware.AuthRequired(), authHandler.UpdateProfile)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/filters", productHandler.GetFilterOptions)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.GET("/mine", productHandler.MyProducts)
				protected.GET("/updates/mine", productHandler.MyUpdateSubmissions)
				protected.PATCH("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/updates", productHandler.ProposeUpdate)
			}

			products.GET("/:id", productHandler.GetProduct)
		}

		// Store routes
		stores := api.Group("/stores")
		{
			stores.GET("", storeHandler.ListStores)

			protected := stores.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", storeHandler.CreateStore)
				protected.GET("/mine", storeHandler.MyStores)
				protected.PATCH("/:id", storeHandler.UpdateStore)
				protected.DELETE("/:id", storeHandler.DeleteStore)
			}

			stores.GET("/:id", storeHandler.GetStore)
		}

		// Upload routes
		upload := api.Group("/upload")
		upload.Use(middleware.AuthRequired(), middleware.UploadRateLimit())
		{
			upload.POST("/token", uploadHandler.IssueTicket)
			upload.POST("/confirm", uploadHandler.ConfirmUpload)
			upload.POST("/direct", uploadHandler.DirectUpload)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.GetStats)

			admin.GET("/submissions", adminHandler.PendingProducts)
			admin.POST("/submissions/:id/approve", adminHandler.ApproveProduct)
			admin.POST("/submissions/:id/reject", adminHandler.RejectProduct)

			admin.GET("/stores/submissions", adminHandler.PendingStores)
			admin.POST("/stores/:id/approve", adminHandler.ApproveStore)
			admin.POST("/stores/:id/reject", adminHandler.RejectStore)

			admin.GET("/product-updates", adminHandler.PendingUpdates)
			admin.POST("/product-updates/:id/approve", adminHandler.ApproveUpdate)
			admin.POST("/product-updates/:id/reject", adminHandler.RejectUpdate)

			admin.GET("/users/search", adminHandler.SearchUsers)
			admin.POST("/users/:id/promote", adminHandler.PromoteUser)
			admin.POST("/users/:id/demote", adminHandler.DemoteUser)
		}
	}

	return r, nil
}
