// @title           Renovirt Backend API
// @version         1.0.0
// @description     Backend for the Renovirt photo post-processing service. Handles the order flow wizard, image uploads, pricing with credits, payments, and the administrative back office.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"renovirt-backend/internal/chat"
	"renovirt-backend/internal/config"
	"renovirt-backend/internal/database"
	"renovirt-backend/internal/edge"
	"renovirt-backend/internal/handlers"
	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/middleware"
	"renovirt-backend/internal/services"
	"renovirt-backend/internal/supabase"
	"renovirt-backend/internal/wizard"
)

func main() {
	// The structured logger is not up yet; report bootstrap failures on stderr.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize supabase client", zap.Error(err))
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage client", zap.Error(err))
	}

	watermarkClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.WatermarkBucket)
	if err != nil {
		logger.Log.Fatal("failed to initialize watermark storage client", zap.Error(err))
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)
	edgeClient := edge.NewClient(cfg.EdgeFunctionBaseURL, cfg.EdgeFunctionKey)

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("failed to initialize database client", zap.Error(err))
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("failed to initialize migrator", zap.Error(err))
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}
	logger.Log.Info("migrations completed")

	registry := wizard.NewRegistry(cfg.DraftIdleTTL)
	chatStore := chat.NewStore(cfg.ChatSessionTTL)

	orderService := services.NewOrderService(dbClient, realtimeClient, edgeClient, registry)
	adminService := services.NewAdminService(dbClient, realtimeClient)
	cleanupService := services.NewCleanupService(dbClient, storageClient, registry, chatStore, 24*time.Hour)

	adminVerifier := middleware.NewAdminVerifier(dbClient, cfg.AdminReverifyInterval)
	rateLimiter := middleware.NewRateLimiter(5, 10)
	chatLimiter := middleware.NewRateLimiter(0.5, 3)

	referenceHandler := handlers.NewReferenceHandler(dbClient)
	orderFlowHandler := handlers.NewOrderFlowHandler(registry, orderService)
	uploadHandler := handlers.NewUploadHandler(registry, storageClient, watermarkClient, realtimeClient)
	ordersHandler := handlers.NewOrdersHandler(dbClient)
	profileHandler := handlers.NewProfileHandler(dbClient, edgeClient)
	adminHandler := handlers.NewAdminHandler(adminService, dbClient, storageClient)
	paymentsHandler := handlers.NewPaymentsHandler(cfg, orderService)
	authHandler := handlers.NewAuthHandler(cfg, edgeClient)
	chatHandler := handlers.NewChatHandler(chatStore, chatLimiter)
	pagesHandler := handlers.NewPagesHandler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go cleanupService.Run(ctx, 15*time.Minute)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(handlers.PageTemplates())
	router.StaticFS("/static", handlers.StaticFiles())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Browser page routes
	router.GET("/", pagesHandler.Root)
	router.GET("/auth", pagesHandler.Auth)
	router.GET("/admin-auth", pagesHandler.AdminAuth)
	router.GET("/contact", pagesHandler.Contact)

	pages := router.Group("/")
	pages.Use(middleware.PageAuth(cfg))
	pages.GET("/onboarding", pagesHandler.Onboarding)
	pages.GET("/dashboard", pagesHandler.Dashboard)
	pages.GET("/orders", pagesHandler.Orders)
	pages.GET("/order-flow", pagesHandler.OrderFlow)
	pages.GET("/profile", pagesHandler.Profile)

	admin := router.Group("/management")
	admin.Use(middleware.PageAuth(cfg))
	admin.Use(middleware.SecureAdminSession(adminVerifier))
	admin.Use(middleware.RequireAdmin(adminVerifier))
	admin.GET("", pagesHandler.Management)

	router.NoRoute(pagesHandler.NotFound)

	// Session endpoints (no bearer auth; they establish it)
	router.POST("/api/v1/auth/session", authHandler.CreateSession)
	router.DELETE("/api/v1/auth/session", authHandler.DestroySession)
	router.POST("/api/v1/auth/password-reset", authHandler.RequestPasswordReset)

	// Webhook (no auth, uses shared-secret token)
	router.POST("/api/v1/webhooks/payments", paymentsHandler.HandleWebhook)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.Use(rateLimiter.Middleware())

	// Reference data
	api.GET("/packages", referenceHandler.GetPackages)
	api.GET("/addons", referenceHandler.GetAddons)

	// Order flow wizard
	api.GET("/order-flow/draft", orderFlowHandler.GetDraft)
	api.PATCH("/order-flow/draft", orderFlowHandler.PatchDraft)
	api.DELETE("/order-flow/draft", orderFlowHandler.ResetDraft)
	api.POST("/order-flow/advance", orderFlowHandler.Advance)
	api.POST("/order-flow/retreat", orderFlowHandler.Retreat)
	api.GET("/order-flow/quote", orderFlowHandler.Quote)
	api.POST("/order-flow/upload", uploadHandler.Upload)
	api.POST("/order-flow/watermark", uploadHandler.UploadWatermark)
	api.POST("/order-flow/submit", orderFlowHandler.Submit)

	// Orders
	api.GET("/orders", ordersHandler.ListOrders)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)
	api.GET("/orders/:order_id/files", ordersHandler.GetFiles)

	// Payments
	api.POST("/payments/verify", paymentsHandler.VerifyPayment)

	// Profile
	api.GET("/profile", profileHandler.GetProfile)
	api.GET("/profile/credits", profileHandler.GetCredits)
	api.GET("/profile/notifications", profileHandler.GetNotifications)
	api.POST("/profile/referral", profileHandler.RedeemReferral)

	// Chat assistant
	api.POST("/chat/messages", chatHandler.PostMessage)
	api.GET("/chat/sessions/:session_id", chatHandler.GetHistory)

	// Admin API
	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.APIRequireAdmin(adminVerifier))
	adminAPI.GET("/orders", adminHandler.ListOrders)
	adminAPI.PATCH("/orders/:id/status", adminHandler.UpdateStatus)
	adminAPI.GET("/orders/:id/archive", adminHandler.DownloadArchive)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Log.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Log.Fatal("failed to start server", zap.Error(err))
	}
}
