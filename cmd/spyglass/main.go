package main

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"spyglass/internal/handlers"
	"spyglass/internal/metrics"
	"spyglass/pkg/auth"
	"spyglass/pkg/config"
	"spyglass/pkg/database"
	"spyglass/pkg/logging"
	"spyglass/pkg/monitoring"
	"spyglass/pkg/redis"
	"spyglass/pkg/server"
	"spyglass/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("spyglass")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Spyglass (Creator Engagement API)")

	dbURL := config.RequireEnv("DATABASE_URL")
	jwtSecret := config.RequireEnv("JWT_SECRET")
	redisURL := config.GetEnv("REDIS_URL", "")

	dbConfig := database.DefaultConfig()
	dbConfig.URL = dbURL
	db := database.MustConnect(dbConfig, logger)
	defer func() { _ = db.Close() }()

	// Redis is optional; invite rate limiting degrades without it
	var redisClient goredis.UniversalClient
	if redisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := redis.NewClientFromURL(ctx, redisURL)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without it")
		} else {
			redisClient = client
			defer func() { _ = client.Close() }()
		}
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("spyglass", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("spyglass", version.Version, version.GitCommit)

	healthChecker.AddCheck("postgres", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("redis", monitoring.RedisHealthCheck(redisClient))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATABASE_URL": dbURL,
		"JWT_SECRET":   jwtSecret,
	}))

	serviceMetrics := &metrics.Metrics{
		ReportRequests:      metricsCollector.NewCounter("report_requests_total", "Engagement report requests", []string{"status"}),
		ReportDuration:      metricsCollector.NewHistogram("report_duration_seconds", "Engagement report duration", []string{"range"}, nil),
		RecordFetchFailures: metricsCollector.NewCounter("record_fetch_failures_total", "Activity record fetch failures", []string{"collection"}),
		PanelQueries:        metricsCollector.NewCounter("panel_queries_total", "Dashboard panel queries", []string{"panel", "operation"}),
		InviteRedemptions:   metricsCollector.NewCounter("invite_redemptions_total", "Invite code redemption attempts", []string{"outcome"}),
		CacheHits:           metricsCollector.NewCounter("cache_requests_total", "Cache lookups", []string{"cache", "result"}),
	}

	handlers.Init(db, redisClient, logger, serviceMetrics)

	router := server.SetupServiceRouter(logger, "spyglass", healthChecker, metricsCollector)

	// Public routes (no auth)
	public := router.Group("/api/v1")
	public.POST("/invites/:code/redeem", handlers.RedeemInviteCode)

	// Creator-scoped routes
	v1 := router.Group("/api/v1")
	v1.Use(auth.JWTAuthMiddleware([]byte(jwtSecret)))
	{
		v1.GET("/analytics/report", handlers.GetEngagementReport)
		v1.GET("/analytics/channels", handlers.GetChannels)

		v1.GET("/campaigns", handlers.GetCampaigns)
		v1.POST("/campaigns", handlers.CreateCampaign)
		v1.PUT("/campaigns/:id", handlers.UpdateCampaign)
		v1.DELETE("/campaigns/:id", handlers.DeleteCampaign)
		v1.POST("/campaigns/:id/queue", handlers.QueueCampaign)

		v1.GET("/invites", handlers.GetInviteCodes)
		v1.POST("/invites", handlers.CreateInviteCode)
		v1.DELETE("/invites/:id", handlers.DeleteInviteCode)

		v1.GET("/promotions", handlers.GetPromotions)
		v1.POST("/promotions", handlers.CreatePromotion)
		v1.PUT("/promotions/:id", handlers.UpdatePromotion)
		v1.DELETE("/promotions/:id", handlers.DeletePromotion)

		v1.GET("/fans", handlers.GetFans)
		v1.GET("/fans/:id", handlers.GetFan)
		v1.PUT("/fans/:id", handlers.UpdateFan)
		v1.DELETE("/fans/:id", handlers.DeleteFan)

		v1.GET("/calendar", handlers.GetCalendar)
		v1.POST("/calendar", handlers.CreateCalendarEntry)
		v1.PUT("/calendar/:id", handlers.UpdateCalendarEntry)
		v1.DELETE("/calendar/:id", handlers.DeleteCalendarEntry)
	}

	serverConfig := server.DefaultConfig("spyglass", "18080")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
