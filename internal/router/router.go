// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shangabeauty/shop-backend/internal/cart"
	"github.com/shangabeauty/shop-backend/internal/config"
	"github.com/shangabeauty/shop-backend/internal/handlers"
	"github.com/shangabeauty/shop-backend/internal/middleware"
	"github.com/shangabeauty/shop-backend/internal/services"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	sessionTTL := time.Duration(cfg.Cart.SessionTTL) * time.Hour

	// Cart storage backend: in-process map for single-node deployments,
	// Redis when the shop runs more than one instance.
	var cartStore cart.Store
	if cfg.Cart.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cartStore = cart.NewRedisStore(client, sessionTTL)
	} else {
		cartStore = cart.NewMemoryStore(sessionTTL)
	}

	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}
	catalogService := services.NewCatalogService(db)
	orderService := services.NewOrderService(db, notificationService)
	cartService := services.NewCartService(catalogService, cartStore)
	checkoutService := services.NewCheckoutService(orderService, cartStore)
	authService := services.NewAuthService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderService)
	adminHandler := handlers.NewAdminHandler(catalogService, orderService, notificationService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	var corsOrigins []string
	if cfg.Frontend.BaseURL != "" {
		corsOrigins = append(corsOrigins, cfg.Frontend.BaseURL)
	}
	r.Use(middleware.CORS(corsOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	cookieMaxAge := int(sessionTTL.Seconds())
	secureCookies := cfg.Environment == "production"
	cartSession := middleware.CartSession(cookieMaxAge, secureCookies)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes (staff only)
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Storefront catalog (public)
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		// Session cart (public, cookie-scoped)
		cartRoutes := v1.Group("/cart")
		cartRoutes.Use(cartSession)
		{
			cartRoutes.GET("", cartHandler.GetCart)
			cartRoutes.DELETE("", cartHandler.ClearCart)
			cartRoutes.POST("/items", cartHandler.AddItem)
			cartRoutes.PUT("/items/:productId", cartHandler.UpdateItem)
			cartRoutes.DELETE("/items/:productId", cartHandler.RemoveItem)
		}

		// Checkout (public, cookie-scoped)
		v1.POST("/checkout", cartSession, middleware.CheckoutRateLimit(), checkoutHandler.Submit)

		// Order confirmation lookup (public, by order ID)
		v1.GET("/orders/:id", checkoutHandler.GetOrder)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			// Dashboard
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", adminHandler.GetDashboardStats)
			}

			// Catalog management
			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", adminHandler.GetProducts)
				adminProducts.POST("", adminHandler.CreateProduct)
				adminProducts.POST("/upload-images", middleware.UploadRateLimit(), adminHandler.UploadProductImages)
				adminProducts.GET("/:id", adminHandler.GetProduct)
				adminProducts.PUT("/:id", adminHandler.UpdateProduct)
				adminProducts.DELETE("/:id", adminHandler.DeleteProduct)
				adminProducts.PUT("/:id/variants", adminHandler.ReplaceVariants)
			}

			// Order management
			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", adminHandler.GetOrders)
				adminOrders.GET("/recent", adminHandler.GetRecentOrders)
				adminOrders.GET("/:id", adminHandler.GetOrder)
				adminOrders.PUT("/:id/status", adminHandler.UpdateOrderStatus)
			}

			// Notifications
			adminNotifications := admin.Group("/notifications")
			{
				adminNotifications.GET("", adminHandler.GetNotifications)
				adminNotifications.PUT("/:id/read", adminHandler.MarkNotificationRead)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
