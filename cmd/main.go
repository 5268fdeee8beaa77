package main

import (
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"steamlytics/ai"
	"steamlytics/cache"
	"steamlytics/dataset"
	"steamlytics/db"
	"steamlytics/handlers"
	"steamlytics/middleware"
	"steamlytics/monitoring"
	"steamlytics/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()
	monitoring.InitMetrics()
	db.InitDB()

	if err := cache.InitRedis(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, caching and rate limits disabled")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data/raw"
	}
	analyzer := dataset.New(dataDir)

	snap := analyzer.Snapshot()
	monitoring.SetDatasetGauges("games", len(snap.Games), snap.GamesLoaded)
	monitoring.SetDatasetGauges("users", len(snap.Users), snap.UsersLoaded)
	monitoring.SetDatasetGauges("recommendations", len(snap.Recommendations), snap.RecommendationsLoaded)

	engine := ai.NewEngine(analyzer, os.Getenv("GEMINI_API_KEY"))
	if engine.AIEnabled() {
		logrus.Info("Generative model chain configured")
	} else {
		logrus.Info("No GEMINI_API_KEY set, chat runs on canned analysis only")
	}

	// Set to release mode in production
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RemovePoweredBy())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(monitoring.PrometheusMiddleware())

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		s := analyzer.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"data_loaded": s.Loaded(),
			"redis":       cache.IsRedisAvailable(),
			"ai_enabled":  engine.AIEnabled(),
		})
	})
	r.GET("/metrics", monitoring.PrometheusHandler())

	r.POST("/auth/register", handlers.Register)
	r.POST("/auth/login", handlers.Login)
	r.POST("/auth/logout", handlers.Logout)

	chatLimit := middleware.RateLimitMiddleware(30, time.Minute)

	protected := r.Group("/", handlers.AuthMiddleware())
	{
		api := protected.Group("/analytics/api")
		{
			api.GET("/games-analytics", handlers.GamesAnalytics(analyzer))
			api.GET("/user-analytics", handlers.UserAnalytics(analyzer))
			api.GET("/metrics", handlers.MetricsSummary(analyzer))
			api.GET("/dashboard-metrics", handlers.DashboardMetrics(analyzer))
			api.GET("/real-time-metrics", handlers.RealTimeMetrics(analyzer))
			api.GET("/top-games", handlers.TopGames(analyzer))
			api.GET("/csv-stats", handlers.CSVStats(analyzer))
			api.GET("/data-summary", handlers.DataSummary(analyzer))
			api.GET("/data-overview", handlers.DataOverview(analyzer))
			api.GET("/refresh-data", handlers.RefreshData(analyzer))
			api.GET("/ai-insights", handlers.AIInsights(analyzer))
			api.POST("/query-analytics", chatLimit, handlers.QueryAnalytics(engine))
		}

		aiGroup := protected.Group("/ai")
		{
			aiGroup.POST("/chat", chatLimit, handlers.Chat(engine))
			aiGroup.POST("/chat-insight", chatLimit, handlers.ChatInsight(engine))
			aiGroup.GET("/insights", handlers.ListInsights)
			aiGroup.DELETE("/insights/:id", handlers.DeleteInsight)
			aiGroup.POST("/search-games", handlers.SearchGames(analyzer))
			aiGroup.POST("/user-analysis", handlers.UserAnalysis(analyzer))
		}

		protected.POST("/chatbot/chat", chatLimit, handlers.ChatbotChat(analyzer))
		protected.POST("/premium-chatbot/chat", chatLimit, handlers.PremiumChat(engine))
		protected.GET("/premium-chatbot/welcome", handlers.PremiumWelcome(analyzer))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Check if HTTPS should be enabled
	useHTTPS := os.Getenv("USE_HTTPS") == "true"
	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")

	if useHTTPS && certFile != "" && keyFile != "" {
		// HTTPS Configuration
		log.Println("🔒 Starting server with HTTPS on port", port)
		log.Println("📜 Certificate:", certFile)
		log.Println("🔑 Private Key:", keyFile)

		// TLS Configuration with secure defaults
		tlsConfig := &tls.Config{
			MinVersion:               tls.VersionTLS12,
			CurvePreferences:         []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
			PreferServerCipherSuites: true,
			CipherSuites: []uint16{
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
				tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_RSA_WITH_AES_256_CBC_SHA,
			},
		}

		server := &http.Server{
			Addr:      ":" + port,
			Handler:   r,
			TLSConfig: tlsConfig,
		}

		if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
			log.Fatal("❌ Failed to start HTTPS server:", err)
		}
	} else {
		// HTTP Configuration
		log.Println("🌐 Starting server with HTTP on port", port)
		log.Println("⚠️  WARNING: Running without HTTPS. Set USE_HTTPS=true for production")

		if err := r.Run(":" + port); err != nil {
			log.Fatal("❌ Failed to start server:", err)
		}
	}
}
