package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/imoblead/fichapro-api/docs" // Swagger docs
	"github.com/imoblead/fichapro-api/internal/config"
	"github.com/imoblead/fichapro-api/internal/database"
	"github.com/imoblead/fichapro-api/internal/handlers"
	"github.com/imoblead/fichapro-api/internal/jobs"
	"github.com/imoblead/fichapro-api/internal/middleware"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/services"
	"github.com/imoblead/fichapro-api/internal/storage"
	"github.com/imoblead/fichapro-api/pkg/logger"
)

// @title FichaPRO API
// @version 1.0
// @description REST API for the ImobLead real estate portfolio back office

// @contact.name API Support
// @contact.email suporte@imoblead.app

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set.")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs, err := services.NewServices(repos, worker, store, cfg, db)
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Uploaded images (avatars, property photos)
	router.Static("/uploads", cfg.StoragePath+"/uploads")

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public ficha routes (share-link token is the only credential)
	public := router.Group("/public")
	{
		public.GET("/fichas/:token", h.Public.Ficha)
		public.POST("/fichas/:token/leads", h.Public.CaptureLead)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication and password recovery (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
			auth.POST("/send_recovery_code", h.Auth.SendRecoveryCode)
			auth.POST("/verify_recovery_code", h.Auth.VerifyRecoveryCode)
			auth.POST("/update_password_with_code", h.Auth.UpdatePasswordWithCode)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// User management
			protected.GET("/users", middleware.RequirePermission(middleware.PermUserManage), h.User.Index)
			protected.POST("/users", middleware.RequirePermission(middleware.PermUserManage), h.User.Create)
			protected.DELETE("/users/:user_id", middleware.RequirePermission(middleware.PermUserManage), h.User.Delete)
			protected.PUT("/users/:user_id/toggle_status", middleware.RequirePermission(middleware.PermUserManage), h.User.ToggleStatus)
			protected.POST("/users/:user_id/restore", middleware.RequirePermission(middleware.PermUserManage), h.User.Restore)

			// Own profile (or admin acting on any profile)
			protected.GET("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Show)
			protected.PUT("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Update)
			protected.PATCH("/users/:user_id/change_password", middleware.RequireAdminOrOwner(), h.User.ChangePassword)
			protected.POST("/users/:user_id/avatar", middleware.RequireAdminOrOwner(), h.User.UpdateAvatar)

			// Property portfolio
			protected.GET("/properties", middleware.RequirePermission(middleware.PermPropertyRead), h.Property.Index)
			protected.GET("/properties/stats", middleware.RequirePermission(middleware.PermPropertyRead), h.Property.Stats)
			protected.GET("/properties/export", middleware.RequirePermission(middleware.PermExport), h.Property.Export)
			protected.POST("/properties/data_quality", middleware.RequirePermission(middleware.PermPropertyWrite), h.Property.DataQuality)
			protected.GET("/properties/:property_id", middleware.RequirePermission(middleware.PermPropertyRead), h.Property.Show)
			protected.POST("/properties", middleware.RequirePermission(middleware.PermPropertyWrite), h.Property.Create)
			protected.PUT("/properties/:property_id", middleware.RequirePermission(middleware.PermPropertyWrite), h.Property.Update)
			protected.DELETE("/properties/:property_id", middleware.RequirePermission(middleware.PermPropertyDelete), h.Property.Delete)
			protected.POST("/properties/:property_id/images", middleware.RequirePermission(middleware.PermPropertyWrite), h.Property.UploadImage)

			// Fichas and share links
			protected.GET("/properties/:property_id/ficha", middleware.RequirePermission(middleware.PermFichaGenerate), h.Property.FichaHTML)
			protected.GET("/properties/:property_id/ficha.pdf", middleware.RequirePermission(middleware.PermFichaGenerate), h.Property.FichaPDF)
			protected.GET("/properties/:property_id/share_links", middleware.RequirePermission(middleware.PermShareLinkManage), h.Property.ListShareLinks)
			protected.POST("/properties/:property_id/share_links", middleware.RequirePermission(middleware.PermShareLinkManage), h.Property.IssueShareLink)
			protected.DELETE("/share_links/:link_id", middleware.RequirePermission(middleware.PermShareLinkManage), h.Property.RevokeShareLink)

			// Leads
			protected.GET("/leads", middleware.RequirePermission(middleware.PermLeadRead), h.Lead.Index)
			protected.GET("/leads/:lead_id", middleware.RequirePermission(middleware.PermLeadRead), h.Lead.Show)
			protected.POST("/leads", middleware.RequirePermission(middleware.PermLeadWrite), h.Lead.Create)
			protected.PUT("/leads/:lead_id", middleware.RequirePermission(middleware.PermLeadWrite), h.Lead.Update)
			protected.DELETE("/leads/:lead_id", middleware.RequirePermission(middleware.PermLeadDelete), h.Lead.Delete)

			// Sales pipeline
			protected.GET("/negotiations/board", middleware.RequirePermission(middleware.PermNegotiationRead), h.Negotiation.Board)
			protected.GET("/negotiations", middleware.RequirePermission(middleware.PermNegotiationRead), h.Negotiation.Index)
			protected.GET("/negotiations/:negotiation_id", middleware.RequirePermission(middleware.PermNegotiationRead), h.Negotiation.Show)
			protected.POST("/negotiations", middleware.RequirePermission(middleware.PermNegotiationWrite), h.Negotiation.Create)
			protected.PUT("/negotiations/:negotiation_id", middleware.RequirePermission(middleware.PermNegotiationWrite), h.Negotiation.Update)
			protected.PATCH("/negotiations/:negotiation_id/move", middleware.RequirePermission(middleware.PermNegotiationWrite), h.Negotiation.Move)
			protected.DELETE("/negotiations/:negotiation_id", middleware.RequirePermission(middleware.PermNegotiationWrite), h.Negotiation.Delete)

			// Audit log
			protected.GET("/audits", middleware.RequirePermission(middleware.PermAuditRead), h.Audit.Index)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Purge expired and revoked share links daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Purging expired share links...")
		return svcs.ShareLink.PurgeExpired(ctx)
	})

	// Scan complex/unit linkage quality daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Scanning property data quality...")
		_, err := svcs.Property.ScanDataQuality(ctx)
		return err
	})

	// Flag negotiations sitting untouched in an open stage
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Flagging stale negotiations...")
		return svcs.Negotiation.FlagStale(ctx, cfg.StaleNegotiationDays)
	})

	logger.Info("Scheduled recurring jobs")
}
