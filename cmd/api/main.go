package main

import (
	"os"

	"backend/internal/cache"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "backend/api/swagger"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           Storefront Admin API
// @version         1.0
// @description     Multi-tenant admin API for maker storefronts: pieces, orders, customers, discounts, GST reporting and dashboard statistics.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		logrus.Info("No configs/.env file found or error loading it")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if getenv("LOG_LEVEL", "") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "postgres")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		logrus.WithError(err).Fatal("Database connection failed")
	}
	logrus.Info("Connected to PostgreSQL successfully")

	// Dashboard cache: redis when configured, in-process otherwise
	var dashCache cache.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		dashCache = cache.NewRedisCache(client)
		logrus.WithField("addr", redisAddr).Info("Using redis dashboard cache")
	} else {
		dashCache = cache.NewMemoryCache()
		logrus.Info("Using in-memory dashboard cache")
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	pieceRepo := repository.NewPieceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	txManager := repository.NewTransactionManager(db)

	dashboardService := service.NewDashboardService(pieceRepo, orderRepo, txnRepo, engagementRepo, dashCache)
	authService := service.NewAuthService(userRepo, tenantRepo)
	pieceService := service.NewPieceService(pieceRepo, dashboardService)
	orderService := service.NewOrderService(orderRepo, txManager, dashboardService, wsHub)
	customerService := service.NewCustomerService(customerRepo)
	enquiryService := service.NewEnquiryService(engagementRepo, tenantRepo, dashboardService, wsHub)
	discountService := service.NewDiscountService(discountRepo, tenantRepo)
	transactionService := service.NewTransactionService(txnRepo)
	reportService := service.NewReportService(tenantRepo, txnRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	pieceHandler := handler.NewPieceHandler(pieceService)
	orderHandler := handler.NewOrderHandler(orderService)
	customerHandler := handler.NewCustomerHandler(customerService)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService)
	discountHandler := handler.NewDiscountHandler(discountService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Set up Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route (docs generated with swag init)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	pieceHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	customerHandler.RegisterRoutes(router.Group(""))
	enquiryHandler.RegisterRoutes(router.Group(""))
	discountHandler.RegisterRoutes(router.Group(""))
	transactionHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	dashboardHandler.RegisterRoutes(router.Group(""))

	port := getenv("PORT", "8080")

	logrus.WithField("port", port).Info("Server listening")
	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Server failed")
	}
}
