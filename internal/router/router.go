// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopyangu/backend/internal/config"
	"github.com/shopyangu/backend/internal/handlers"
	"github.com/shopyangu/backend/internal/middleware"
	"github.com/shopyangu/backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	shopService := services.NewShopService(db)
	productService := services.NewProductService(db)
	metricsService := services.NewMetricsService(db)

	// Initialize handlers
	shopHandler := handlers.NewShopHandler(shopService, productService)
	productHandler := handlers.NewProductHandler(productService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Shop routes
	shops := r.Group("/shops")
	{
		shops.GET("", shopHandler.GetShops)
		shops.POST("", shopHandler.CreateShop)
		shops.PATCH("/:id", shopHandler.UpdateShop)
		shops.DELETE("/:id", shopHandler.DeleteShop)
		shops.GET("/:id/products", shopHandler.GetShopProducts)
		shops.POST("/:id/reassign-products", shopHandler.ReassignProducts)
	}

	// Product routes
	products := r.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.POST("", productHandler.CreateProduct)
		products.PATCH("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}

	// Reporting
	r.GET("/metrics", metricsHandler.GetMetrics)

	// Image upload
	r.POST("/upload", middleware.UploadRateLimit(), uploadHandler.Upload)

	return r
}
