package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustward/campbase/config"
	"github.com/dustward/campbase/pkg/analytics"
	"github.com/dustward/campbase/pkg/announcements"
	"github.com/dustward/campbase/pkg/api/handlers"
	"github.com/dustward/campbase/pkg/assets"
	"github.com/dustward/campbase/pkg/auth"
	"github.com/dustward/campbase/pkg/cache"
	"github.com/dustward/campbase/pkg/campaigns"
	"github.com/dustward/campbase/pkg/database"
	"github.com/dustward/campbase/pkg/dues"
	"github.com/dustward/campbase/pkg/export"
	"github.com/dustward/campbase/pkg/invites"
	"github.com/dustward/campbase/pkg/jobs"
	"github.com/dustward/campbase/pkg/logger"
	"github.com/dustward/campbase/pkg/meals"
	"github.com/dustward/campbase/pkg/members"
	"github.com/dustward/campbase/pkg/metrics"
	custommiddleware "github.com/dustward/campbase/pkg/middleware"
	"github.com/dustward/campbase/pkg/ratelimit"
	"github.com/dustward/campbase/pkg/recruits"
	"github.com/dustward/campbase/pkg/tickets"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLogger := logger.New(cfg.LogLevel)
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize database
	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis cache
	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Global rate limiter (token bucket, whole API)
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Public endpoint limiters (fixed window, per IP). The memory store
	// is the default; redis is required once there is more than one
	// replica behind the load balancer.
	var applyLimiter, clickLimiter ratelimit.Store
	var sweepers []*ratelimit.MemoryStore
	applyWindow := time.Duration(cfg.ApplyRateWindowMins) * time.Minute
	clickWindow := time.Duration(cfg.ClickRateWindowMins) * time.Minute
	if cfg.RateLimitStore == "redis" {
		applyLimiter = ratelimit.NewRedisStore(redisClient.Redis, "rl:apply", cfg.ApplyRateLimit, applyWindow)
		clickLimiter = ratelimit.NewRedisStore(redisClient.Redis, "rl:click", cfg.ClickRateLimit, clickWindow)
		log.Printf("✅ Rate limit store: redis")
	} else {
		applyMem := ratelimit.NewMemoryStore(cfg.ApplyRateLimit, applyWindow)
		clickMem := ratelimit.NewMemoryStore(cfg.ClickRateLimit, clickWindow)
		applyLimiter, clickLimiter = applyMem, clickMem
		sweepers = []*ratelimit.MemoryStore{applyMem, clickMem}
		log.Printf("✅ Rate limit store: memory (single instance only)")
	}

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if v.Error != nil {
				appLogger.Error("request", append(attrs, "error", v.Error)...)
			} else {
				appLogger.Info("request", attrs...)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowCredentials: true,
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())
	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Health check endpoints (public)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "Campbase API",
			"version":     "0.1.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":   "unhealthy",
				"database": "down",
			})
		}
		if _, err := redisClient.Redis.Ping(ctx).Result(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"cache":  "down",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status":   "healthy",
			"database": "up",
			"cache":    "up",
		})
	})

	// Prometheus metrics endpoint (public)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize JWT blacklist
	tokenBlacklist := auth.NewTokenBlacklist(redisClient)

	// Initialize services
	campaignService := campaigns.NewService(db.DB)
	recruitService := recruits.NewService(db.DB)
	memberService := members.NewService(db.DB)
	duesService := dues.NewService(db.DB)
	ticketService := tickets.NewService(db.DB)
	assetService := assets.NewService(db.DB)
	announcementService := announcements.NewService(db.DB)
	inviteService := invites.NewService(db.DB)
	mealService := meals.NewService(db.DB)
	analyticsService := analytics.NewService(db.DB)
	exportService := export.NewService(db.DB, duesService)

	// Initialize cron manager for housekeeping jobs
	cronManager := jobs.NewCronManager(announcementService, sweepers, log.Default())
	if err := cronManager.SetupJobs(); err != nil {
		log.Fatalf("❌ Failed to setup cron jobs: %v", err)
	}
	cronManager.Start()
	log.Printf("✅ Cron jobs started")

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(recruitService, campaignService, applyLimiter, clickLimiter, prometheusMetrics)
	authHandler := handlers.NewAuthHandler(db.DB, cfg, tokenBlacklist, inviteService, analyticsService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	recruitHandler := handlers.NewRecruitHandler(recruitService)
	memberHandler := handlers.NewMemberHandler(memberService)
	duesHandler := handlers.NewDuesHandler(duesService, db.DB)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	assetHandler := handlers.NewAssetHandler(assetService, cfg.UploadsDir)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	mealHandler := handlers.NewMealHandler(mealService, memberService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	exportHandler := handlers.NewExportHandler(exportService)

	api := e.Group("/api")

	// Public routes: the intake form, click tracking and auth entry
	// points. Login gets its own tight bucket to slow brute force.
	loginRateLimiter := custommiddleware.NewRateLimiter(5, 2)
	api.POST("/apply", publicHandler.Apply)
	api.POST("/track/click", publicHandler.TrackClick)
	api.POST("/auth/register", authHandler.Register, loginRateLimiter.RateLimitMiddleware())
	api.POST("/auth/login", authHandler.Login, loginRateLimiter.RateLimitMiddleware())

	// Member routes (any authenticated camp account)
	member := api.Group("")
	member.Use(custommiddleware.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
	{
		member.GET("/auth/me", authHandler.Me)
		member.POST("/auth/logout", authHandler.Logout)

		member.GET("/profile", memberHandler.MyProfile)
		member.PUT("/profile", memberHandler.UpdateMyProfile)
		member.GET("/roster", memberHandler.Roster)

		member.GET("/dues/mine", duesHandler.MyBalances)

		member.GET("/tickets/mine", ticketHandler.Mine)
		member.GET("/tickets/availability", ticketHandler.Availability)
		member.POST("/tickets/request", ticketHandler.Request)

		member.GET("/meals", mealHandler.List)
		member.POST("/meals", mealHandler.Create)
		member.DELETE("/meals/:id", mealHandler.Delete)

		member.GET("/announcements", announcementHandler.List)
		member.POST("/announcements", announcementHandler.Create)
		member.DELETE("/announcements/:id", announcementHandler.Delete)

		member.GET("/assets", assetHandler.List)

		member.POST("/activity", analyticsHandler.LogActivity)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(custommiddleware.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
	admin.Use(custommiddleware.RequireAdmin(db.DB))
	{
		admin.GET("/campaigns", campaignHandler.List)
		admin.POST("/campaigns", campaignHandler.Create)
		admin.PUT("/campaigns", campaignHandler.Update)
		admin.DELETE("/campaigns/:id", campaignHandler.Delete)

		admin.GET("/recruits", recruitHandler.List)
		admin.POST("/recruits", recruitHandler.Create)
		admin.PUT("/recruits", recruitHandler.Update)
		admin.DELETE("/recruits/:id", recruitHandler.Delete)

		admin.GET("/dues", duesHandler.ListItems)
		admin.POST("/dues", duesHandler.CreateItem)
		admin.PUT("/dues", duesHandler.UpdateItem)
		admin.DELETE("/dues/:id", duesHandler.DeleteItem)
		admin.POST("/dues/payments", duesHandler.RecordPayment)
		admin.DELETE("/dues/payments/:id", duesHandler.DeletePayment)
		admin.POST("/dues/overrides", duesHandler.SetOverride)
		admin.DELETE("/dues/overrides/:userId/:itemId", duesHandler.RemoveOverride)

		admin.GET("/tickets", ticketHandler.List)
		admin.POST("/tickets", ticketHandler.Create)
		admin.PUT("/tickets", ticketHandler.Update)
		admin.DELETE("/tickets/:id", ticketHandler.Delete)
		admin.GET("/tickets/coverage", ticketHandler.Coverage)

		admin.POST("/assets", assetHandler.Create)
		admin.PUT("/assets", assetHandler.Update)
		admin.DELETE("/assets/:id", assetHandler.Delete)
		admin.POST("/assets/:id/photo", assetHandler.UploadPhoto)

		admin.GET("/invites", inviteHandler.List)
		admin.POST("/invites", inviteHandler.Generate)
		admin.DELETE("/invites/:id", inviteHandler.Delete)

		admin.GET("/users", memberHandler.ListMembers)
		admin.POST("/users/set-admin", memberHandler.SetAdmin)
		admin.DELETE("/users/:id", memberHandler.DeleteUser)

		admin.GET("/engagement", analyticsHandler.Engagement)

		admin.GET("/exports/dues-ledger", exportHandler.DuesLedger)
		admin.GET("/exports/roster", exportHandler.Roster)
	}

	// Asset photos are served as plain static files.
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatalf("❌ Failed to create uploads dir: %v", err)
	}
	e.Static("/uploads", cfg.UploadsDir)

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 Campbase API starting on %s", address)
	log.Printf("🔐 JWT expiration: %d hours", cfg.JWTExpirationHours)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d), apply %d/%dm, click %d/%dm",
		cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst,
		cfg.ApplyRateLimit, cfg.ApplyRateWindowMins,
		cfg.ClickRateLimit, cfg.ClickRateWindowMins)

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	cronManager.Stop()
	log.Println("✅ Cron jobs stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
