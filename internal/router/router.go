// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/cache"
	"github.com/gamevault/gamestore-backend/internal/catalog"
	"github.com/gamevault/gamestore-backend/internal/config"
	"github.com/gamevault/gamestore-backend/internal/events"
	"github.com/gamevault/gamestore-backend/internal/handlers"
	"github.com/gamevault/gamestore-backend/internal/legacy"
	"github.com/gamevault/gamestore-backend/internal/middleware"
	"github.com/gamevault/gamestore-backend/internal/services"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Response cache backend
	var listingCache cache.Cache
	if cfg.Cache.Backend == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to redis")
		}
		listingCache = redisCache
	} else {
		listingCache = cache.NewMemoryCache(cfg.Cache.MaxWeight)
	}
	cacheStep := catalog.NewCacheStep(listingCache, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)

	// Legacy Northwind mirror
	var legacyStore legacy.Store
	if cfg.Legacy.Enabled {
		surrealStore, err := legacy.NewSurrealStore(cfg.Legacy)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to legacy store")
		}
		legacyStore = surrealStore
	} else {
		legacyStore = legacy.NewMemoryStore()
	}

	publisher := events.NewPublisher(cfg.Kafka)

	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)
	reconciler := services.NewReconciler(db, legacyStore)

	authService := services.NewAuthService(db, cfg, notificationService)
	userService := services.NewUserService(db, notificationService)
	gameService := services.NewGameService(db, legacyStore, cacheStep, reconciler, storageService)
	genreService := services.NewGenreService(db)
	platformService := services.NewPlatformService(db)
	publisherService := services.NewPublisherService(db)
	commentService := services.NewCommentService(db, gameService, userService)
	paymentService := services.NewPaymentService(db, cfg)
	orderService := services.NewOrderService(db, gameService, paymentService, notificationService, publisher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	gameHandler := handlers.NewGameHandler(gameService)
	genreHandler := handlers.NewGenreHandler(genreService)
	platformHandler := handlers.NewPlatformHandler(platformService)
	publisherHandler := handlers.NewPublisherHandler(publisherService)
	commentHandler := handlers.NewCommentHandler(commentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	legacyHandler := handlers.NewLegacyHandler(legacyStore)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
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

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Game catalog
		games := v1.Group("/games")
		{
			games.GET("", gameHandler.GetGames)
			games.GET("/:key", gameHandler.GetGame)
			games.GET("/:key/comments", commentHandler.GetComments)

			protected := games.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/:key/comments", commentHandler.CreateComment)
				protected.GET("/:key/download", gameHandler.DownloadGame)
			}

			managed := games.Group("")
			managed.Use(middleware.AuthRequired(), middleware.ManagerRequired())
			{
				managed.POST("", gameHandler.CreateGame)
				managed.PUT("/:key", gameHandler.UpdateGame)
				managed.DELETE("/:key", gameHandler.DeleteGame)
				managed.POST("/:key/image", middleware.UploadRateLimit(), gameHandler.UploadImage)
			}
		}

		// Taxonomy
		v1.GET("/genres", genreHandler.GetGenres)
		v1.GET("/genres/:id/games", genreHandler.GetGenreGames)
		v1.GET("/platforms", platformHandler.GetPlatforms)
		v1.GET("/publishers", publisherHandler.GetPublishers)
		v1.GET("/publishers/:id", publisherHandler.GetPublisher)
		v1.GET("/publishers/:id/games", publisherHandler.GetPublisherGames)

		taxonomy := v1.Group("")
		taxonomy.Use(middleware.AuthRequired(), middleware.ManagerRequired())
		{
			taxonomy.POST("/genres", genreHandler.CreateGenre)
			taxonomy.DELETE("/genres/:id", genreHandler.DeleteGenre)
			taxonomy.POST("/platforms", platformHandler.CreatePlatform)
			taxonomy.DELETE("/platforms/:id", platformHandler.DeletePlatform)
			taxonomy.POST("/publishers", publisherHandler.CreatePublisher)
			taxonomy.PUT("/publishers/:id", publisherHandler.UpdatePublisher)
			taxonomy.DELETE("/publishers/:id", publisherHandler.DeletePublisher)
		}

		// Comments (moderation)
		comments := v1.Group("/comments")
		comments.Use(middleware.AuthRequired())
		{
			comments.DELETE("/:id", commentHandler.DeleteComment)
			comments.POST("/:id/ban", middleware.ModeratorRequired(), commentHandler.DeleteAndBanAuthor)
		}

		// Basket and orders
		basket := v1.Group("/basket")
		basket.Use(middleware.AuthRequired())
		{
			basket.GET("", orderHandler.GetBasket)
			basket.POST("/items", orderHandler.AddItem)
			basket.DELETE("/items/:key", orderHandler.RemoveItem)
			basket.POST("/checkout", orderHandler.Checkout)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.GetOrderHistory)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
		}

		// Profile
		v1.PUT("/profile", middleware.AuthRequired(), userHandler.UpdateProfile)

		// Staff routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			managed := admin.Group("")
			managed.Use(middleware.ManagerRequired())
			{
				managed.GET("/orders", orderHandler.ListOrders)
				managed.POST("/orders/:id/confirm-transfer", orderHandler.ConfirmBankTransfer)
				managed.POST("/orders/:id/ship", orderHandler.ShipOrder)
				managed.GET("/legacy/products", legacyHandler.GetPendingProducts)
				managed.GET("/legacy/shippers", legacyHandler.GetShippers)
			}

			admins := admin.Group("")
			admins.Use(middleware.AdminRequired())
			{
				admins.GET("/users", userHandler.ListUsers)
				admins.POST("/users/:id/ban", userHandler.BanUser)
				admins.POST("/users/:id/unban", userHandler.UnbanUser)
				admins.PUT("/users/:id/role", userHandler.SetRole)
			}
		}
	}

	return r
}
